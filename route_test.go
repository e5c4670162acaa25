package routingtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inet.af/netaddr"
)

func mustPrefix(t *testing.T, s string) netaddr.IPPrefix {
	t.Helper()
	p, err := ParsePrefix(s)
	require.NoError(t, err)
	return p
}

func TestRouteEqual(t *testing.T) {
	p := mustPrefix(t, "8.8.8.8/32")

	r1 := NewRoute(p, Attrs{"via": "192.168.1.1", "dev": "eth0"})
	r2 := NewRoute(p, Attrs{"dev": "eth0"})
	r3 := NewRoute(p, Attrs{"dev": "eth0"})

	assert.False(t, r1.Equal(r2))
	assert.True(t, r2.Equal(r3))
}

func TestRouteEqualDifferentPrefix(t *testing.T) {
	r1 := NewRoute(mustPrefix(t, "8.8.8.8/32"), Attrs{"dev": "eth0"})
	r2 := NewRoute(mustPrefix(t, "8.8.8.9/32"), Attrs{"dev": "eth0"})
	assert.False(t, r1.Equal(r2))
}

func TestRouteString(t *testing.T) {
	r := NewRoute(mustPrefix(t, "8.8.8.8/32"), Attrs{"via": "192.168.1.1"})
	assert.Equal(t, "Route(prefix=8.8.8.8/32, via=192.168.1.1)", r.String())
}

func TestByNetworkOrder(t *testing.T) {
	routes := []Route{
		NewRoute(mustPrefix(t, "10.1.1.0/24"), nil),
		NewRoute(mustPrefix(t, "10.0.0.0/8"), nil),
		NewRoute(mustPrefix(t, "10.1.0.0/16"), nil),
	}
	byNetworkOrder(routes)

	want := []string{"10.0.0.0/8", "10.1.0.0/16", "10.1.1.0/24"}
	for i, w := range want {
		assert.Equal(t, w, routes[i].Prefix.String())
	}
}
