package restadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-accessgate/aerrors"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/identity"
)

// Default endpoint paths relative to the base URL.
const (
	DefaultCurrentUserPath = "/auth/me"
	DefaultSnapshotPath    = "/access/accessible-tenants"
	DefaultTenantPath      = "/tenants"
	DefaultLoginPath       = "/auth/login"
	DefaultLogoutPath      = "/auth/logout"
)

// Doer is the subset of http.Client the provider needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HeaderFunc injects per-request headers, typically auth credentials.
type HeaderFunc func(ctx context.Context, header http.Header)

// Option customizes the REST provider.
type Option func(*Provider)

// Provider implements identity.Provider against a REST identity backend.
type Provider struct {
	baseURL string
	client  Doer
	headers HeaderFunc

	currentUserPath string
	snapshotPath    string
	tenantPath      string
	loginPath       string
	logoutPath      string
}

// New builds a REST-backed identity provider.
func New(baseURL string, opts ...Option) *Provider {
	provider := &Provider{
		baseURL:         strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:          &http.Client{Timeout: 10 * time.Second},
		currentUserPath: DefaultCurrentUserPath,
		snapshotPath:    DefaultSnapshotPath,
		tenantPath:      DefaultTenantPath,
		loginPath:       DefaultLoginPath,
		logoutPath:      DefaultLogoutPath,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	if provider.client == nil {
		provider.client = &http.Client{Timeout: 10 * time.Second}
	}
	return provider
}

// WithClient overrides the HTTP client.
func WithClient(client Doer) Option {
	return func(provider *Provider) {
		if provider == nil {
			return
		}
		provider.client = client
	}
}

// WithHeaderFunc sets a per-request header injector.
func WithHeaderFunc(headers HeaderFunc) Option {
	return func(provider *Provider) {
		if provider == nil {
			return
		}
		provider.headers = headers
	}
}

// WithCurrentUserPath overrides the current-user endpoint path.
func WithCurrentUserPath(path string) Option {
	return func(provider *Provider) {
		if provider == nil {
			return
		}
		provider.currentUserPath = path
	}
}

// WithSnapshotPath overrides the accessible-tenants endpoint path.
func WithSnapshotPath(path string) Option {
	return func(provider *Provider) {
		if provider == nil {
			return
		}
		provider.snapshotPath = path
	}
}

// WithTenantPath overrides the tenant detail endpoint prefix.
func WithTenantPath(path string) Option {
	return func(provider *Provider) {
		if provider == nil {
			return
		}
		provider.tenantPath = strings.TrimRight(path, "/")
	}
}

type principalPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

type projectPayload struct {
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	ProjectCode string    `json:"project_code"`
	IsActive    bool      `json:"is_active"`
	UserRoles   []string  `json:"user_roles"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type tenantPayload struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Identifier  string           `json:"identifier"`
	Description string           `json:"description"`
	UserRoles   []string         `json:"user_roles"`
	Projects    []projectPayload `json:"projects"`
}

type snapshotPayload struct {
	IsProductOwner       bool            `json:"is_product_owner"`
	TenantAdminTenantIDs []string        `json:"tenant_admin_tenant_ids"`
	Tenants              []tenantPayload `json:"tenants"`
}

// CurrentUser implements identity.Provider. A 401 means no authenticated
// session rather than a transport failure, so it maps to a nil principal.
func (p *Provider) CurrentUser(ctx context.Context) (*gate.Principal, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	var payload principalPayload
	status, err := p.getJSON(ctx, p.currentUserPath, &payload)
	if err != nil {
		return nil, p.fetchError(err, "current_user")
	}
	if status == http.StatusUnauthorized || status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, p.statusError(status, "current_user")
	}
	return &gate.Principal{
		ID:          payload.ID,
		Name:        payload.Name,
		Email:       payload.Email,
		Permissions: payload.Permissions,
		Roles:       payload.Roles,
	}, nil
}

// AccessSnapshot implements identity.Provider.
func (p *Provider) AccessSnapshot(ctx context.Context) (*gate.AccessSnapshot, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	var payload snapshotPayload
	status, err := p.getJSON(ctx, p.snapshotPath, &payload)
	if err != nil {
		return nil, p.fetchError(err, "access_snapshot")
	}
	if status != http.StatusOK {
		return nil, p.statusError(status, "access_snapshot")
	}
	snapshot := &gate.AccessSnapshot{
		IsProductOwner:       payload.IsProductOwner,
		TenantAdminTenantIDs: payload.TenantAdminTenantIDs,
	}
	for _, tenant := range payload.Tenants {
		snapshot.Tenants = append(snapshot.Tenants, tenantFromPayload(tenant))
	}
	return snapshot, nil
}

// TenantByID implements identity.Provider.
func (p *Provider) TenantByID(ctx context.Context, tenantID string) (gate.AccessibleTenant, error) {
	if err := p.ready(); err != nil {
		return gate.AccessibleTenant{}, err
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return gate.AccessibleTenant{}, aerrors.NewBadInput(aerrors.TextCodeProviderFetchFailed, "restadapter: tenant id required", p.meta("tenant_by_id"))
	}
	var payload tenantPayload
	status, err := p.getJSON(ctx, p.tenantPath+"/"+tenantID, &payload)
	if err != nil {
		return gate.AccessibleTenant{}, p.fetchError(err, "tenant_by_id")
	}
	if status != http.StatusOK {
		return gate.AccessibleTenant{}, p.statusError(status, "tenant_by_id")
	}
	return tenantFromPayload(payload), nil
}

// Login implements identity.Provider.
func (p *Provider) Login(ctx context.Context) error {
	if err := p.ready(); err != nil {
		return err
	}
	status, err := p.post(ctx, p.loginPath)
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeLoginFailed, "restadapter: login request failed", p.meta("login"))
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return aerrors.NewExternal(aerrors.TextCodeLoginFailed, fmt.Sprintf("restadapter: login returned status %d", status), p.meta("login"))
	}
	return nil
}

// Logout implements identity.Provider.
func (p *Provider) Logout(ctx context.Context) error {
	if err := p.ready(); err != nil {
		return err
	}
	status, err := p.post(ctx, p.logoutPath)
	if err != nil {
		return aerrors.WrapExternal(err, aerrors.TextCodeLogoutFailed, "restadapter: logout request failed", p.meta("logout"))
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return aerrors.NewExternal(aerrors.TextCodeLogoutFailed, fmt.Sprintf("restadapter: logout returned status %d", status), p.meta("logout"))
	}
	return nil
}

func tenantFromPayload(payload tenantPayload) gate.AccessibleTenant {
	tenant := gate.AccessibleTenant{
		TenantID:         payload.ID,
		TenantName:       payload.Name,
		TenantIdentifier: payload.Identifier,
		Description:      payload.Description,
		UserRoles:        payload.UserRoles,
		ProjectCount:     len(payload.Projects),
	}
	for _, project := range payload.Projects {
		tenant.Projects = append(tenant.Projects, gate.AccessibleProject{
			ProjectID:   project.ProjectID,
			ProjectName: project.ProjectName,
			ProjectCode: project.ProjectCode,
			IsActive:    project.IsActive,
			UserRoles:   project.UserRoles,
			Description: project.Description,
			CreatedAt:   project.CreatedAt,
		})
	}
	return tenant
}

func (p *Provider) ready() error {
	if p == nil || p.client == nil || p.baseURL == "" {
		return aerrors.WrapSentinel(aerrors.ErrProviderRequired, "restadapter: base url and client are required", map[string]any{
			aerrors.MetaProvider: "rest",
		})
	}
	return nil
}

func (p *Provider) getJSON(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if p.headers != nil {
		p.headers(ctx, req.Header)
	}
	res, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return res.StatusCode, nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return res.StatusCode, err
	}
	return res.StatusCode, nil
}

func (p *Provider) post(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if p.headers != nil {
		p.headers(ctx, req.Header)
	}
	res, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return res.StatusCode, nil
}

func (p *Provider) fetchError(err error, operation string) error {
	return aerrors.WrapExternal(err, aerrors.TextCodeProviderFetchFailed, "restadapter: request failed", p.meta(operation))
}

func (p *Provider) statusError(status int, operation string) error {
	meta := p.meta(operation)
	meta["status"] = status
	return aerrors.NewExternal(aerrors.TextCodeProviderFetchFailed, fmt.Sprintf("restadapter: unexpected status %d", status), meta)
}

func (p *Provider) meta(operation string) map[string]any {
	return map[string]any{
		aerrors.MetaProvider:  "rest",
		aerrors.MetaOperation: operation,
	}
}

var _ identity.Provider = (*Provider)(nil)
