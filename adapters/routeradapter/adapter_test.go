package routeradapter

import (
	"testing"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/routes"
)

func TestEvaluatePathLoadingWinsOverLogin(t *testing.T) {
	result, err := EvaluatePath(nil, routes.Default(), "/orders/42", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != gate.DecisionLoading {
		t.Fatalf("in-flight identity must hold the route in loading, got %v", result.State)
	}
}

func TestEvaluatePathPublicRendersWhileLoading(t *testing.T) {
	result, err := EvaluatePath(nil, routes.Default(), "/login", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != gate.DecisionAllow {
		t.Fatalf("public routes render regardless of loading, got %v", result.State)
	}
}

func TestEvaluatePathAnonymousRedirectsToLogin(t *testing.T) {
	result, err := EvaluatePath(nil, routes.Default(), "/orders/42", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != gate.DecisionLogin {
		t.Fatalf("expected login redirect, got %v", result.State)
	}
	if result.ReturnTo != "/orders/42" {
		t.Fatalf("expected captured return path, got %q", result.ReturnTo)
	}
}

func TestEvaluatePathUnknownPathFailsClosed(t *testing.T) {
	_, err := EvaluatePath(nil, routes.Default(), "/not-in-the-table", false)
	if err == nil {
		t.Fatalf("expected error for unlisted path")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeRouteUnknown {
		t.Fatalf("expected route-unknown, got %v", err)
	}
}

func TestRequirePathLoadingMapsToSnapshotNotReady(t *testing.T) {
	err := RequirePath(nil, routes.Default(), "/orders/42", true)
	if err == nil {
		t.Fatalf("expected error while loading")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeSnapshotNotReady {
		t.Fatalf("expected snapshot-not-ready, got %v", err)
	}
}
