package payloadschema

import (
	"errors"
	"testing"
)

func TestValidateDetectRequest_Valid(t *testing.T) {
	req, err := ValidateDetectRequest([]byte(`{"text":"  the cat sat  "}`))
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if req.Text != "  the cat sat  " {
		t.Fatalf("expected text to be preserved verbatim, got %q", req.Text)
	}
}

func TestValidateDetectRequest_FieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "empty body", body: ``, field: "body"},
		{name: "malformed", body: `{"text":`, field: "body"},
		{name: "trailing content", body: `{"text":"a"} {}`, field: "body"},
		{name: "not an object", body: `["text"]`, field: "body"},
		{name: "missing text", body: `{}`, field: "text"},
		{name: "empty text", body: `{"text":""}`, field: "text"},
		{name: "null text", body: `{"text":null}`, field: "text"},
		{name: "numeric text", body: `{"text":42}`, field: "text"},
		{name: "unknown property", body: `{"text":"a","lang":"en"}`, field: "body"},
	}

	for _, tc := range cases {
		_, err := ValidateDetectRequest([]byte(tc.body))
		if err == nil {
			t.Fatalf("%s: expected validation to fail", tc.name)
		}
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("%s: expected *FieldError, got %T: %v", tc.name, err, err)
		}
		if fieldErr.Field != tc.field {
			t.Fatalf("%s: unexpected field: got %q want %q (%v)", tc.name, fieldErr.Field, tc.field, fieldErr)
		}
	}
}
