package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBasicLoggerWritesLevelAndPairs(t *testing.T) {
	buf := &bytes.Buffer{}
	log := &BasicLogger{Writer: buf}

	log.Info("selection.committed", "user_id", "user-1", "tenant", "T1")

	line := strings.TrimRight(buf.String(), "\n")
	if line != "[INFO] selection.committed user_id=user-1 tenant=T1" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestBasicLoggerFieldsAreSorted(t *testing.T) {
	buf := &bytes.Buffer{}
	log := (&BasicLogger{Writer: buf}).WithFields(map[string]any{
		"tenant":  "T1",
		"project": int64(5),
	})

	log.Debug("resolver.outcome")

	line := strings.TrimRight(buf.String(), "\n")
	if line != "[DEBUG] resolver.outcome project=5 tenant=T1" {
		t.Fatalf("expected sorted fields, got %q", line)
	}
}

func TestBasicLoggerDanglingArg(t *testing.T) {
	buf := &bytes.Buffer{}
	log := &BasicLogger{Writer: buf}

	log.Warn("hydration.retry", "tenant_id", "tenant-1", "orphan")

	line := strings.TrimRight(buf.String(), "\n")
	if line != "[WARN] hydration.retry tenant_id=tenant-1 orphan" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := (&BasicLogger{Writer: buf}).WithFields(map[string]any{"a": 1})
	fielded, ok := parent.(FieldsLogger)
	if !ok {
		t.Fatalf("expected FieldsLogger")
	}
	child := fielded.WithFields(map[string]any{"b": 2})

	child.Info("child")
	parent.Info("parent")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "[INFO] child a=1 b=2" {
		t.Fatalf("unexpected child line: %q", lines[0])
	}
	if lines[1] != "[INFO] parent a=1" {
		t.Fatalf("parent fields must be untouched, got %q", lines[1])
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	log := Default()
	if log == nil {
		t.Fatalf("expected a default logger")
	}
	if log.WithContext(context.Background()) == nil {
		t.Fatalf("expected WithContext to return a logger")
	}
}
