package restadapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-accessgate/aerrors"
)

type stubDoer struct {
	responses map[string]stubResponse
	requests  []*http.Request
	err       error
}

type stubResponse struct {
	status int
	body   string
}

func (d *stubDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	key := req.Method + " " + req.URL.Path
	res, ok := d.responses[key]
	if !ok {
		res = stubResponse{status: http.StatusNotFound}
	}
	return &http.Response{
		StatusCode: res.status,
		Body:       io.NopCloser(strings.NewReader(res.body)),
		Header:     http.Header{},
	}, nil
}

func TestCurrentUserDecodesPrincipal(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"GET /auth/me": {status: http.StatusOK, body: `{
			"id": "user-1",
			"name": "Dana",
			"email": "dana@example.com",
			"permissions": ["ViewOrders"],
			"roles": ["operator"]
		}`},
	}}
	provider := New("https://api.example.com", WithClient(doer))

	principal, err := provider.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal == nil || principal.ID != "user-1" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if len(principal.Permissions) != 1 || principal.Permissions[0] != "ViewOrders" {
		t.Fatalf("unexpected permissions: %v", principal.Permissions)
	}
}

func TestCurrentUserUnauthorizedMeansAnonymous(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"GET /auth/me": {status: http.StatusUnauthorized},
	}}
	provider := New("https://api.example.com", WithClient(doer))

	principal, err := provider.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("401 is not an error: %v", err)
	}
	if principal != nil {
		t.Fatalf("expected nil principal, got %+v", principal)
	}
}

func TestAccessSnapshotDecodesTenants(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"GET /access/accessible-tenants": {status: http.StatusOK, body: `{
			"is_product_owner": false,
			"tenant_admin_tenant_ids": ["tenant-1"],
			"tenants": [{
				"id": "tenant-1",
				"name": "Acme",
				"identifier": "T1",
				"projects": [{"project_id": 5, "project_name": "Invoices", "is_active": true}]
			}]
		}`},
	}}
	provider := New("https://api.example.com", WithClient(doer))

	snapshot, err := provider.AccessSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.Tenants) != 1 || snapshot.Tenants[0].TenantIdentifier != "T1" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if snapshot.Tenants[0].ProjectCount != 1 {
		t.Fatalf("expected project count, got %+v", snapshot.Tenants[0])
	}
	project, ok := snapshot.Tenants[0].Project(5)
	if !ok || project.ProjectName != "Invoices" {
		t.Fatalf("unexpected project: %+v %v", project, ok)
	}
}

func TestTenantByIDBuildsPath(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"GET /tenants/tenant-1": {status: http.StatusOK, body: `{"id": "tenant-1", "name": "Acme", "identifier": "T1"}`},
	}}
	provider := New("https://api.example.com", WithClient(doer))

	tenant, err := provider.TenantByID(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant.TenantID != "tenant-1" || tenant.TenantName != "Acme" {
		t.Fatalf("unexpected tenant: %+v", tenant)
	}
}

func TestTenantByIDRequiresID(t *testing.T) {
	provider := New("https://api.example.com", WithClient(&stubDoer{}))

	if _, err := provider.TenantByID(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestRequestErrorsAreWrapped(t *testing.T) {
	doer := &stubDoer{err: errors.New("connection refused")}
	provider := New("https://api.example.com", WithClient(doer))

	_, err := provider.AccessSnapshot(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	rich, ok := aerrors.As(err)
	if !ok || rich.TextCode != aerrors.TextCodeProviderFetchFailed {
		t.Fatalf("expected fetch-failed wrap, got %v", err)
	}
}

func TestLoginAndLogoutPostToProvider(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"POST /auth/login":  {status: http.StatusNoContent},
		"POST /auth/logout": {status: http.StatusOK},
	}}
	provider := New("https://api.example.com", WithClient(doer))

	if err := provider.Login(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := provider.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doer.requests) != 2 {
		t.Fatalf("expected two requests, got %d", len(doer.requests))
	}
}

func TestHeaderFuncInjectsCredentials(t *testing.T) {
	doer := &stubDoer{responses: map[string]stubResponse{
		"GET /auth/me": {status: http.StatusOK, body: `{"id": "user-1"}`},
	}}
	provider := New("https://api.example.com",
		WithClient(doer),
		WithHeaderFunc(func(_ context.Context, header http.Header) {
			header.Set("Authorization", "Bearer token")
		}),
	)

	if _, err := provider.CurrentUser(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doer.requests[0].Header.Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected injected header, got %q", got)
	}
}
