package routes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-accessgate/gate"
)

// Definition describes a navigable area: its path pattern and the access
// rule the guard evaluates for it. Public areas skip authentication
// entirely; AuthOnly areas need a principal but no particular permission.
type Definition struct {
	Name        string
	Path        string
	Public      bool
	AuthOnly    bool
	Requirement gate.Requirement
}

// Catalog exposes area definitions by name and by request path.
type Catalog interface {
	Get(name string) (Definition, bool)
	Match(path string) (Definition, bool)
	List() []Definition
}

// StaticCatalog provides an in-memory catalog.
type StaticCatalog struct {
	defs map[string]Definition
}

// NewStatic builds an in-memory catalog from provided definitions.
func NewStatic(defs []Definition) *StaticCatalog {
	out := make(map[string]Definition, len(defs))
	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			continue
		}
		def.Name = name
		def.Path = normalizePath(def.Path)
		out[name] = def
	}
	return &StaticCatalog{defs: out}
}

// Get implements Catalog.
func (c *StaticCatalog) Get(name string) (Definition, bool) {
	if c == nil || len(c.defs) == 0 {
		return Definition{}, false
	}
	def, ok := c.defs[strings.TrimSpace(name)]
	return def, ok
}

// Match implements Catalog. Path patterns may contain ":param" segments;
// the most specific pattern (fewest params) wins when several match.
func (c *StaticCatalog) Match(path string) (Definition, bool) {
	if c == nil || len(c.defs) == 0 {
		return Definition{}, false
	}
	segments := splitPath(path)
	best := Definition{}
	bestParams := -1
	found := false
	for _, def := range c.defs {
		params, ok := matchPattern(def.Path, segments)
		if !ok {
			continue
		}
		if bestParams == -1 || params < bestParams {
			best = def
			bestParams = params
			found = true
		}
	}
	return best, found
}

// List implements Catalog, sorted by name.
func (c *StaticCatalog) List() []Definition {
	if c == nil || len(c.defs) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Definition, 0, len(names))
	for _, name := range names {
		out = append(out, c.defs[name])
	}
	return out
}

func matchPattern(pattern string, segments []string) (int, bool) {
	patternSegments := splitPath(pattern)
	if len(patternSegments) != len(segments) {
		return 0, false
	}
	params := 0
	for i, expected := range patternSegments {
		if strings.HasPrefix(expected, ":") {
			params++
			continue
		}
		if expected != segments[i] {
			return 0, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

var _ Catalog = (*StaticCatalog)(nil)
