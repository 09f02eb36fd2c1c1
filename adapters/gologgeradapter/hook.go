package gologgeradapter

import (
	"context"
	"strings"

	"github.com/goliatone/go-accessgate/activity"
	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/scope"
	"github.com/goliatone/go-logger/glog"
)

// Hook logs guard decisions and selection changes using go-logger.
type Hook struct {
	logger           glog.Logger
	decisionLevel    string
	selectionLevel   string
	decisionMessage  string
	selectionMessage string
}

// Option customizes the logger hook.
type Option func(*Hook)

// New builds a logging hook for decision/selection events.
func New(logger glog.Logger, opts ...Option) *Hook {
	hook := &Hook{
		logger:           logger,
		decisionLevel:    "debug",
		selectionLevel:   "info",
		decisionMessage:  "accessgate.decision",
		selectionMessage: "accessgate.selection",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(hook)
		}
	}
	return hook
}

// WithDecisionLevel sets the log level for decision events.
func WithDecisionLevel(level string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.decisionLevel = strings.ToLower(strings.TrimSpace(level))
	}
}

// WithSelectionLevel sets the log level for selection events.
func WithSelectionLevel(level string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.selectionLevel = strings.ToLower(strings.TrimSpace(level))
	}
}

// WithDecisionMessage overrides the decision log message.
func WithDecisionMessage(message string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.decisionMessage = message
	}
}

// WithSelectionMessage overrides the selection log message.
func WithSelectionMessage(message string) Option {
	return func(hook *Hook) {
		if hook == nil {
			return
		}
		hook.selectionMessage = message
	}
}

// OnDecision implements gate.DecisionHook.
func (h *Hook) OnDecision(ctx context.Context, event gate.DecisionEvent) {
	if h == nil || h.logger == nil {
		return
	}
	fields := map[string]any{
		"route":               event.Route,
		"path":                event.Path,
		"decision":            event.State,
		scope.MetadataUserID:  event.PrincipalID,
		"require_all":         event.Required.RequireAll,
		"required_permission": event.Required.PermissionList(),
		"required_role":       event.Required.RoleList(),
	}
	if event.RedirectTo != "" {
		fields["redirect_to"] = event.RedirectTo
	}
	if event.ReturnTo != "" {
		fields["return_to"] = event.ReturnTo
	}
	h.log(ctx, h.decisionLevel, h.decisionMessage, fields)
}

// OnSelection implements activity.Hook.
func (h *Hook) OnSelection(ctx context.Context, event activity.SelectionEvent) {
	if h == nil || h.logger == nil {
		return
	}
	fields := map[string]any{
		"action":               event.Action,
		"confirmed":            event.Confirmed,
		scope.MetadataUserID:   event.UserID,
		scope.MetadataTenantID: event.TenantIdentifier,
	}
	if event.ProjectID != nil {
		fields[scope.MetadataProjectID] = *event.ProjectID
	}
	h.log(ctx, h.selectionLevel, h.selectionMessage, fields)
}

func (h *Hook) log(ctx context.Context, level string, message string, fields map[string]any) {
	logger := h.logger
	if logger == nil {
		return
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(glog.FieldsLogger); ok && len(fields) > 0 {
		logger = fieldsLogger.WithFields(fields)
	}
	switch level {
	case "trace":
		logger.Trace(message)
	case "debug":
		logger.Debug(message)
	case "warn":
		logger.Warn(message)
	case "error":
		logger.Error(message)
	case "fatal":
		// Avoid Fatal in go-accessgate; treat fatal as error instead.
		logger.Error(message)
	default:
		logger.Info(message)
	}
}

var _ gate.DecisionHook = (*Hook)(nil)
var _ activity.Hook = (*Hook)(nil)
