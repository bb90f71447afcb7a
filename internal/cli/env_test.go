package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvLoaderLoadsRequestedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LANGID_TEST_CORPUS_DIR=/data/corpora\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("LANGID_ENV_FILE", "")
	t.Setenv("LANGID_TEST_CORPUS_DIR", "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, ".env", "")
	if err := fs.Parse([]string{"--env", path}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != path {
		t.Fatalf("unexpected loaded path: got %q want %q", loaded, path)
	}
	if got := os.Getenv("LANGID_TEST_CORPUS_DIR"); got != "/data/corpora" {
		t.Fatalf("unexpected env value: %q", got)
	}
}

func TestEnvLoaderMissingDefaultIsNotAnError(t *testing.T) {
	t.Setenv("LANGID_ENV_FILE", "")

	missing := filepath.Join(t.TempDir(), "absent.env")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, missing, "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("expected missing default to be ignored, got %v", err)
	}
	if loaded != "" {
		t.Fatalf("unexpected loaded path: %q", loaded)
	}
}

func TestEnvLoaderMissingExplicitFileFails(t *testing.T) {
	t.Setenv("LANGID_ENV_FILE", "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, ".env", "")
	if err := fs.Parse([]string{"--env", filepath.Join(t.TempDir(), "nope.env")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected explicit missing file to fail")
	}
}
