package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultOptions(t *testing.T) {
	opts := GetDefaultOptions()

	if opts.Port != 8000 {
		t.Fatalf("Unexpected default port: %d", opts.Port)
	}
	if opts.DefaultPageSize != 20 {
		t.Fatalf("Unexpected default page size: %d", opts.DefaultPageSize)
	}
	if opts.MaxPageSize != 100 {
		t.Fatalf("Unexpected max page size: %d", opts.MaxPageSize)
	}
	if opts.APIKey == "" {
		t.Fatal("Default API key must not be empty")
	}
}

func TestParseFile(t *testing.T) {
	GetDefaultOptions()

	file := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9000
api_key: secret-key
max_page_size: 50
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := ParseFile(file)
	if err != nil {
		t.Fatalf("Failed to parse config file: %v", err)
	}
	if opts.Port != 9000 {
		t.Fatalf("Unexpected port: %d", opts.Port)
	}
	if opts.APIKey != "secret-key" {
		t.Fatalf("Unexpected API key: %q", opts.APIKey)
	}
	if opts.MaxPageSize != 50 {
		t.Fatalf("Unexpected max page size: %d", opts.MaxPageSize)
	}
	// Untouched fields keep their defaults.
	if opts.Host != "0.0.0.0" {
		t.Fatalf("Unexpected host: %q", opts.Host)
	}
}

func TestParseFileMissing(t *testing.T) {
	GetDefaultOptions()

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}
