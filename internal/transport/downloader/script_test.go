package downloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "download.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArgs(t *testing.T) {
	got := strings.Join(Args("/tmp/gfs.cnf", 24, "2025080412"), " ")
	if got != "-c /tmp/gfs.cnf -P 24 -D 2025080412" {
		t.Errorf("args = %q", got)
	}
}

func TestDownload_PassesArgs(t *testing.T) {
	path := writeScript(t, `echo "$@"`+"\n")
	var out bytes.Buffer

	s := New(Config{ScriptPath: path, Stdout: &out})
	if err := s.Download(context.Background(), "/tmp/gfs.cnf", 8, "2025080400"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "-c /tmp/gfs.cnf -P 8 -D 2025080400" {
		t.Errorf("script saw %q", out.String())
	}
}

func TestDownload_NonZeroExit(t *testing.T) {
	path := writeScript(t, "echo failing >&2\nexit 3\n")
	var errOut bytes.Buffer

	err := New(Config{ScriptPath: path, Stderr: &errOut}).Download(context.Background(), "x", 1, "c")
	if err == nil || !strings.Contains(err.Error(), "code 3") {
		t.Fatalf("expected exit code 3 error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "failing") {
		t.Errorf("stderr not forwarded: %q", errOut.String())
	}
}

func TestDownload_MissingScript(t *testing.T) {
	err := New(Config{ScriptPath: filepath.Join(t.TempDir(), "nope.sh")}).
		Download(context.Background(), "x", 1, "c")
	if err == nil {
		t.Fatal("expected error for missing script")
	}
	if err := New(Config{}).Download(context.Background(), "x", 1, "c"); err == nil {
		t.Fatal("expected error for empty script path")
	}
}

func TestCheck(t *testing.T) {
	if err := New(Config{ScriptPath: writeScript(t, "exit 0\n")}).Check(); err != nil {
		t.Fatalf("executable script: %v", err)
	}

	plain := filepath.Join(t.TempDir(), "plain.sh")
	if err := os.WriteFile(plain, []byte("exit 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := New(Config{ScriptPath: plain}).Check(); err == nil {
		t.Error("expected error for non-executable script")
	}
	if err := New(Config{ScriptPath: filepath.Join(t.TempDir(), "missing.sh")}).Check(); err == nil {
		t.Error("expected error for missing script")
	}
	if err := New(Config{}).Check(); err == nil {
		t.Error("expected error for empty path")
	}
}
