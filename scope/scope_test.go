package scope

import (
	"context"
	"testing"

	"github.com/goliatone/go-accessgate/gate"
)

func TestPrincipalRoundtrip(t *testing.T) {
	principal := &gate.Principal{ID: "user-1"}
	ctx := WithPrincipal(context.Background(), principal)

	got, ok := Principal(ctx)
	if !ok || got.ID != "user-1" {
		t.Fatalf("unexpected principal: %+v %v", got, ok)
	}
}

func TestPrincipalMissing(t *testing.T) {
	if _, ok := Principal(context.Background()); ok {
		t.Fatalf("expected no principal")
	}
	if _, ok := Principal(nil); ok {
		t.Fatalf("nil context has no principal")
	}
	if _, ok := Principal(WithPrincipal(context.Background(), nil)); ok {
		t.Fatalf("stored nil principal must not resolve")
	}
}

func TestTenantIdentifierTrimsWhitespace(t *testing.T) {
	ctx := WithTenantIdentifier(context.Background(), "  T1  ")
	if got := TenantIdentifier(ctx); got != "T1" {
		t.Fatalf("expected trimmed identifier, got %q", got)
	}
	if got := TenantIdentifier(context.Background()); got != "" {
		t.Fatalf("expected empty identifier, got %q", got)
	}
}

func TestProjectIDRoundtrip(t *testing.T) {
	ctx := WithProjectID(context.Background(), 5)
	id, ok := ProjectID(ctx)
	if !ok || id != 5 {
		t.Fatalf("unexpected project id: %d %v", id, ok)
	}
	if _, ok := ProjectID(context.Background()); ok {
		t.Fatalf("expected no project id")
	}
}

func TestReturnToRoundtrip(t *testing.T) {
	ctx := WithReturnTo(context.Background(), " /orders/42 ")
	if got := ReturnTo(ctx); got != "/orders/42" {
		t.Fatalf("expected trimmed path, got %q", got)
	}
	if got := ReturnTo(nil); got != "" {
		t.Fatalf("nil context has no return path, got %q", got)
	}
}
