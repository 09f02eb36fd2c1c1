package configadapter

import (
	"strings"

	"github.com/goliatone/go-config/config"

	"github.com/goliatone/go-accessgate/gate"
	"github.com/goliatone/go-accessgate/routes"
)

type configOptions struct {
	delimiter string
}

// Option configures configadapter parsing.
type Option func(*configOptions)

// WithDelimiter sets the key delimiter used when flattening nested maps.
func WithDelimiter(delimiter string) Option {
	return func(cfg *configOptions) {
		if cfg == nil {
			return
		}
		cfg.delimiter = delimiter
	}
}

// NewCatalog builds a route catalog from a nested config map. Nested maps
// become dotted route names ("batches" > "create" becomes "batches.create")
// unless the map itself describes a route, which is detected by the
// presence of a "path" entry.
//
//	routes:
//	  batches:
//	    path: /batches
//	    permission: ViewBatches
//	  users:
//	    path: /users
//	    permissions: [CreateUsers, ViewUsers]
//	    require_all: true
func NewCatalog(data map[string]any, opts ...Option) *routes.StaticCatalog {
	cfg := configOptions{delimiter: "."}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.delimiter == "" {
		cfg.delimiter = "."
	}

	var defs []routes.Definition
	flattenRoutes("", data, cfg.delimiter, &defs)
	return routes.NewStatic(defs)
}

func flattenRoutes(prefix string, data map[string]any, delim string, out *[]routes.Definition) {
	if len(data) == 0 {
		return
	}
	for key, value := range data {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		name := trimmedKey
		if prefix != "" {
			name = prefix + delim + trimmedKey
		}

		node, ok := anyMap(value)
		if !ok {
			continue
		}
		if def, isRoute := definitionFromMap(name, node); isRoute {
			*out = append(*out, def)
			continue
		}
		flattenRoutes(name, node, delim, out)
	}
}

func anyMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func definitionFromMap(name string, data map[string]any) (routes.Definition, bool) {
	path, ok := data["path"].(string)
	if !ok || strings.TrimSpace(path) == "" {
		return routes.Definition{}, false
	}

	def := routes.Definition{
		Name:   name,
		Path:   strings.TrimSpace(path),
		Public: boolValue(data["public"]),
	}
	def.AuthOnly = boolValue(data["auth_only"])
	def.Requirement = gate.Requirement{
		Permission:  stringValue(data["permission"]),
		Permissions: stringList(data["permissions"]),
		RequireAll:  boolValue(data["require_all"]),
		Role:        stringValue(data["role"]),
		Roles:       stringList(data["roles"]),
	}
	return def, true
}

type optionalBool interface {
	IsSet() bool
	Value() bool
}

func boolValue(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case *bool:
		return typed != nil && *typed
	case optionalBool:
		return typed.IsSet() && typed.Value()
	case config.OptionalBool:
		return typed.IsSet() && typed.Value()
	case *config.OptionalBool:
		return typed != nil && typed.IsSet() && typed.Value()
	case string:
		return strings.EqualFold(strings.TrimSpace(typed), "true")
	default:
		return false
	}
}

func stringValue(value any) string {
	typed, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(typed)
}

func stringList(value any) []string {
	var raw []any
	switch typed := value.(type) {
	case []string:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	case []any:
		raw = typed
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if name := stringValue(item); name != "" {
			out = append(out, name)
		}
	}
	return out
}
