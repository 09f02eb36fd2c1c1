package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/logger"
	"github.com/goliatone/go-accessgate/scope"
)

const (
	TemplateContextKey   = "access_ctx"
	TemplatePrincipalKey = "access_principal"
)

// HelperConfig configures template helpers.
type HelperConfig struct {
	ContextKey         string
	PrincipalKey       string
	EnableErrorLogging bool
	Logger             logger.Logger
}

// HelperOption configures template helpers.
type HelperOption func(*HelperConfig)

// DefaultHelperConfig returns the default helper configuration.
func DefaultHelperConfig() HelperConfig {
	return HelperConfig{
		ContextKey:   TemplateContextKey,
		PrincipalKey: TemplatePrincipalKey,
	}
}

// WithContextKey overrides the template context key name.
func WithContextKey(key string) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.ContextKey = strings.TrimSpace(key)
	}
}

// WithPrincipalKey overrides the template principal key name.
func WithPrincipalKey(key string) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.PrincipalKey = strings.TrimSpace(key)
	}
}

// WithErrorLogging toggles logging for helper lookups that find no
// principal.
func WithErrorLogging(enabled bool) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.EnableErrorLogging = enabled
	}
}

// WithLogger injects a logger for helper logging.
func WithLogger(lgr logger.Logger) HelperOption {
	return func(cfg *HelperConfig) {
		if cfg == nil {
			return
		}
		cfg.Logger = lgr
	}
}

// TemplateHelpers returns the permission helper set for pongo2 templates.
// The principal is read from template data first and from the request
// context as a fallback. A missing principal makes every check false; a
// template never errors on an anonymous viewer.
func TemplateHelpers(opts ...HelperOption) map[string]any {
	cfg := DefaultHelperConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.EnableErrorLogging && cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	helpers := &helperSet{cfg: cfg}

	return map[string]any{
		"can":          helpers.can,
		"can_any":      helpers.canAny,
		"can_all":      helpers.canAll,
		"has_role":     helpers.hasRole,
		"has_any_role": helpers.hasAnyRole,
		"can_if":       helpers.canIf,
		"can_class":    helpers.canClass,
	}
}

type helperSet struct {
	cfg HelperConfig
}

func (h *helperSet) can(execCtx *pongo2.ExecutionContext, permission any) bool {
	name, ok := parseName(permission)
	if !ok {
		return false
	}
	principal := h.principal(execCtx)
	if principal == nil {
		h.logMissingPrincipal("can")
		return false
	}
	return principal.HasPermission(name)
}

func (h *helperSet) canAny(execCtx *pongo2.ExecutionContext, permissions ...any) bool {
	parsed := parseNames(permissions...)
	if len(parsed) == 0 {
		return false
	}
	principal := h.principal(execCtx)
	if principal == nil {
		h.logMissingPrincipal("can_any")
		return false
	}
	return principal.HasAnyPermission(parsed...)
}

func (h *helperSet) canAll(execCtx *pongo2.ExecutionContext, permissions ...any) bool {
	parsed := parseNames(permissions...)
	if len(parsed) == 0 {
		return false
	}
	principal := h.principal(execCtx)
	if principal == nil {
		h.logMissingPrincipal("can_all")
		return false
	}
	return principal.HasAllPermissions(parsed...)
}

func (h *helperSet) hasRole(execCtx *pongo2.ExecutionContext, role any) bool {
	name, ok := parseName(role)
	if !ok {
		return false
	}
	principal := h.principal(execCtx)
	if principal == nil {
		h.logMissingPrincipal("has_role")
		return false
	}
	return principal.HasRole(name)
}

func (h *helperSet) hasAnyRole(execCtx *pongo2.ExecutionContext, roles ...any) bool {
	parsed := parseNames(roles...)
	if len(parsed) == 0 {
		return false
	}
	principal := h.principal(execCtx)
	if principal == nil {
		h.logMissingPrincipal("has_any_role")
		return false
	}
	return principal.HasAnyRole(parsed...)
}

func (h *helperSet) canIf(execCtx *pongo2.ExecutionContext, permission any, whenTrue any, whenFalse ...any) any {
	var fallback any = ""
	if len(whenFalse) > 0 {
		fallback = whenFalse[0]
	}
	if h.can(execCtx, permission) {
		return whenTrue
	}
	return fallback
}

func (h *helperSet) canClass(execCtx *pongo2.ExecutionContext, permission any, on any, off ...any) any {
	var fallback any = ""
	if len(off) > 0 {
		fallback = off[0]
	}
	if h.can(execCtx, permission) {
		return on
	}
	return fallback
}

func (h *helperSet) principal(execCtx *pongo2.ExecutionContext) *gate.Principal {
	data := templateData(execCtx)
	if data != nil {
		key := h.cfg.PrincipalKey
		if key == "" {
			key = TemplatePrincipalKey
		}
		if raw, ok := data[key]; ok && raw != nil {
			if principal, ok := principalFromValue(raw); ok {
				return principal
			}
		}
	}
	if principal, ok := scope.Principal(h.context(execCtx)); ok {
		return principal
	}
	return nil
}

func (h *helperSet) context(execCtx *pongo2.ExecutionContext) context.Context {
	data := templateData(execCtx)
	if data == nil {
		return context.Background()
	}
	key := h.cfg.ContextKey
	if key == "" {
		key = TemplateContextKey
	}
	raw, ok := data[key]
	if !ok || raw == nil {
		return context.Background()
	}
	return contextFromValue(raw)
}

func (h *helperSet) logMissingPrincipal(helper string) {
	if h == nil || !h.cfg.EnableErrorLogging || h.cfg.Logger == nil {
		return
	}
	h.cfg.Logger.Debug("accessgate.helper_no_principal", "helper", helper)
}

func principalFromValue(value any) (*gate.Principal, bool) {
	value = unwrapValue(value)
	switch typed := value.(type) {
	case *gate.Principal:
		return typed, typed != nil
	case gate.Principal:
		return &typed, true
	default:
		return nil, false
	}
}

func parseName(value any) (string, bool) {
	raw := unwrapValue(value)
	switch typed := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed != ""
	case fmt.Stringer:
		trimmed := strings.TrimSpace(typed.String())
		return trimmed, trimmed != ""
	default:
		return "", false
	}
}

func parseNames(values ...any) []string {
	names := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range flattenNames(value) {
			if name, ok := parseName(item); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

func flattenNames(value any) []any {
	value = unwrapValue(value)
	switch typed := value.(type) {
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}
		return out
	case []any:
		return typed
	default:
		return []any{value}
	}
}

func unwrapValue(value any) any {
	if value == nil {
		return nil
	}
	if pv, ok := value.(*pongo2.Value); ok && pv != nil {
		return pv.Interface()
	}
	return value
}

func contextFromValue(value any) context.Context {
	switch typed := value.(type) {
	case context.Context:
		return typed
	case interface{ Context() context.Context }:
		return typed.Context()
	default:
		return context.Background()
	}
}

func templateData(execCtx *pongo2.ExecutionContext) map[string]any {
	if execCtx == nil || execCtx.Public == nil {
		return nil
	}
	data := make(map[string]any, len(execCtx.Public))
	for key, value := range execCtx.Public {
		data[key] = value
	}
	return data
}
