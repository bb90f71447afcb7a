package language

import "testing"

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"en":      "English",
		"fr":      "French",
		"ar":      "Arabic",
		"":        "",
		"not a ~": "",
	}
	for code, want := range tests {
		if got := Label(code); got != want {
			t.Fatalf("unexpected label for %q: got %q want %q", code, got, want)
		}
	}
}
