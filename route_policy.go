package rentals

import (
	"strings"
)

// Visibility classifies a route as reachable without credentials or not
type Visibility int

const (
	// VisibilityProtected requires a verified identity
	VisibilityProtected Visibility = iota
	// VisibilityPublic is reachable without credentials
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "protected"
}

// RouteRule maps a method and path pattern to a visibility. A pattern ending
// in "/**" matches the prefix itself and any deeper path, for that method
// only.
type RouteRule struct {
	Method     string
	Pattern    string
	Visibility Visibility
}

// RoutePolicy is the static table deciding which endpoints require a
// verified identity. Rules are evaluated in order, first match wins, and
// anything unmatched is protected. The table is built once at startup and is
// safe for unsynchronized concurrent reads.
type RoutePolicy struct {
	rules []RouteRule
}

// NewRoutePolicy builds a policy from an ordered rule list
func NewRoutePolicy(rules []RouteRule) *RoutePolicy {
	owned := make([]RouteRule, len(rules))
	copy(owned, rules)
	return &RoutePolicy{rules: owned}
}

// DefaultRoutePolicy carries the deployment route table: auth entry points,
// listing reads and creation, messages, and picture serving are public;
// everything else needs a token.
func DefaultRoutePolicy() *RoutePolicy {
	return NewRoutePolicy([]RouteRule{
		{Method: "POST", Pattern: "/auth/register", Visibility: VisibilityPublic},
		{Method: "POST", Pattern: "/auth/login", Visibility: VisibilityPublic},
		{Method: "GET", Pattern: "/auth/me", Visibility: VisibilityPublic},
		{Method: "POST", Pattern: "/rentals/**", Visibility: VisibilityPublic},
		{Method: "GET", Pattern: "/rentals/**", Visibility: VisibilityPublic},
		{Method: "POST", Pattern: "/messages", Visibility: VisibilityPublic},
		{Method: "GET", Pattern: "/images/**", Visibility: VisibilityPublic},
	})
}

// Classify resolves the visibility for a method and normalized path
func (p *RoutePolicy) Classify(method, path string) Visibility {
	method = strings.ToUpper(strings.TrimSpace(method))
	path = normalizePath(path)

	for _, rule := range p.rules {
		if rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Visibility
		}
	}

	return VisibilityProtected
}

// Protected reports whether a route requires a verified identity
func (p *RoutePolicy) Protected(method, path string) bool {
	return p.Classify(method, path) == VisibilityProtected
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if path == prefix {
			return true
		}
		return strings.HasPrefix(path, prefix+"/")
	}
	return pattern == path
}
