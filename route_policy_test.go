package rentals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ouestloc/rentals"
)

func TestRoutePolicy_Classify(t *testing.T) {
	policy := rentals.DefaultRoutePolicy()

	tests := []struct {
		name   string
		method string
		path   string
		want   rentals.Visibility
	}{
		{"register is public", "POST", "/auth/register", rentals.VisibilityPublic},
		{"login is public", "POST", "/auth/login", rentals.VisibilityPublic},
		{"me is public for GET", "GET", "/auth/me", rentals.VisibilityPublic},
		{"me is protected for POST", "POST", "/auth/me", rentals.VisibilityProtected},
		{"listing collection read is public", "GET", "/rentals", rentals.VisibilityPublic},
		{"listing item read is public", "GET", "/rentals/42", rentals.VisibilityPublic},
		{"deep listing path is public", "GET", "/rentals/42/photos/3", rentals.VisibilityPublic},
		{"listing create is public", "POST", "/rentals", rentals.VisibilityPublic},
		{"listing update is protected", "PUT", "/rentals/42", rentals.VisibilityProtected},
		{"listing delete is protected", "DELETE", "/rentals/42", rentals.VisibilityProtected},
		{"messages create is public", "POST", "/messages", rentals.VisibilityPublic},
		{"messages read is protected", "GET", "/messages", rentals.VisibilityProtected},
		{"pictures are public", "GET", "/images/abc.jpg", rentals.VisibilityPublic},
		{"unknown route defaults to protected", "GET", "/admin", rentals.VisibilityProtected},
		{"root defaults to protected", "GET", "/", rentals.VisibilityProtected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Classify(tt.method, tt.path))
		})
	}
}

func TestRoutePolicy_Normalization(t *testing.T) {
	policy := rentals.DefaultRoutePolicy()

	t.Run("trailing slash is ignored", func(t *testing.T) {
		assert.Equal(t, rentals.VisibilityPublic, policy.Classify("GET", "/rentals/"))
	})

	t.Run("method is case insensitive", func(t *testing.T) {
		assert.Equal(t, rentals.VisibilityPublic, policy.Classify("get", "/rentals"))
	})

	t.Run("missing leading slash is tolerated", func(t *testing.T) {
		assert.Equal(t, rentals.VisibilityPublic, policy.Classify("GET", "rentals"))
	})
}

func TestRoutePolicy_FirstMatchWins(t *testing.T) {
	policy := rentals.NewRoutePolicy([]rentals.RouteRule{
		{Method: "GET", Pattern: "/things/special", Visibility: rentals.VisibilityProtected},
		{Method: "GET", Pattern: "/things/**", Visibility: rentals.VisibilityPublic},
	})

	assert.True(t, policy.Protected("GET", "/things/special"))
	assert.False(t, policy.Protected("GET", "/things/other"))
}

func TestRoutePolicy_WildcardScoping(t *testing.T) {
	policy := rentals.NewRoutePolicy([]rentals.RouteRule{
		{Method: "GET", Pattern: "/files/**", Visibility: rentals.VisibilityPublic},
	})

	t.Run("wildcard matches the prefix itself", func(t *testing.T) {
		assert.False(t, policy.Protected("GET", "/files"))
	})

	t.Run("wildcard matches deeper paths", func(t *testing.T) {
		assert.False(t, policy.Protected("GET", "/files/a/b/c"))
	})

	t.Run("wildcard does not leak to sibling prefixes", func(t *testing.T) {
		assert.True(t, policy.Protected("GET", "/filesystem"))
	})

	t.Run("wildcard is method scoped", func(t *testing.T) {
		assert.True(t, policy.Protected("DELETE", "/files/a"))
	})
}

func TestRoutePolicy_Protected(t *testing.T) {
	policy := rentals.DefaultRoutePolicy()

	assert.False(t, policy.Protected("POST", "/auth/login"))
	assert.True(t, policy.Protected("PUT", "/rentals/1"))
}
