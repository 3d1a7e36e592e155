package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaryMissing(t *testing.T) {
	result := CheckBinary("definitely-not-a-real-binary-name")
	if result.Passed {
		t.Fatal("expected failure for missing binary")
	}
	if result.Detail == "" {
		t.Error("expected detail naming the binary")
	}
}

func TestCheckBinaryEmpty(t *testing.T) {
	if result := CheckBinary("  "); result.Passed {
		t.Fatal("expected failure for unconfigured binary")
	}
}

func TestCheckBinaryFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckBinary(path)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result.Detail != path {
		t.Errorf("detail = %q, want resolved path %q", result.Detail, path)
	}
}

func TestCheckBinaryNotExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-tool")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckBinary(path); result.Passed {
		t.Fatal("expected failure for non-executable file")
	}
}

func TestCheckLogDir(t *testing.T) {
	if result := CheckLogDir(""); !result.Passed {
		t.Error("empty log dir should pass")
	}

	dir := filepath.Join(t.TempDir(), "logs")
	result := CheckLogDir(dir)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("log dir was not created: %v", err)
	}
}

func TestRunReportsFirstFailure(t *testing.T) {
	if err := Run("definitely-not-a-real-binary-name", ""); err == nil {
		t.Fatal("expected error from failing binary check")
	}
}
