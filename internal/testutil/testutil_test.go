package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	cmd := exec.Command(stubPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected success exit, got %v", err)
	}
}

func TestWriteStubWithExitCreatesExecutableWithRequestedExitCode(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStubWithExit(t, dir, "exit-stub", 7)

	err := exec.Command(stubPath).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
}

func TestWriteStubWithStderrPrintsExactText(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStubWithStderr(t, dir, "stderr-stub", "gzip: unexpected end of file", 2)

	var stderr bytes.Buffer
	cmd := exec.Command(stubPath)
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
	if stderr.String() != "gzip: unexpected end of file" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestWriteStubExpectArgHonorsRequiredArg(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStubExpectArg(t, dir, "arg-stub", "--ready")

	if err := exec.Command(stubPath, "--ready").Run(); err != nil {
		t.Fatalf("expected success with required arg, got %v", err)
	}
	if err := exec.Command(stubPath, "--missing").Run(); err == nil {
		t.Fatal("expected failure without required arg")
	}
}

func TestPrependPathMakesStubResolvable(t *testing.T) {
	dir := t.TempDir()
	WriteStub(t, dir, "xbt-test-stub")
	PrependPath(t, dir)

	path, err := exec.LookPath("xbt-test-stub")
	if err != nil {
		t.Fatalf("look path: %v", err)
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
}
