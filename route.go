package routingtable

import (
	"fmt"
	"sort"
	"strings"

	"inet.af/netaddr"
)

// Attrs is a mapping of attribute name to opaque attribute value, carried
// by a Route. Equality of two Routes requires identical Attrs maps,
// including the prefix (see Route.Equal).
type Attrs map[string]any

// Route is a prefix plus an arbitrary attribute bag. Routes are immutable
// once constructed; an attribute change is modeled as a new Route sharing
// the same prefix, coexisting in the same bucket.
type Route struct {
	Prefix netaddr.IPPrefix
	Attrs  Attrs
}

// NewRoute builds a Route over prefix with the given attrs. A nil attrs map
// is treated the same as an empty one.
func NewRoute(prefix netaddr.IPPrefix, attrs Attrs) Route {
	if attrs == nil {
		attrs = Attrs{}
	}
	return Route{Prefix: prefix, Attrs: attrs}
}

// Equal reports whether r and other carry the same prefix and an
// identical attribute set.
func (r Route) Equal(other Route) bool {
	if r.Prefix != other.Prefix {
		return false
	}
	if len(r.Attrs) != len(other.Attrs) {
		return false
	}
	for k, v := range r.Attrs {
		ov, ok := other.Attrs[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// String formats the Route as "Route(prefix=..., k=v, ...)", mirroring the
// key=value rendering of the Python original.
func (r Route) String() string {
	keys := make([]string, 0, len(r.Attrs))
	for k := range r.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, fmt.Sprintf("prefix=%s", r.Prefix))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r.Attrs[k]))
	}
	return fmt.Sprintf("Route(%s)", strings.Join(parts, ", "))
}

// byNetworkOrder sorts Routes by (network id ascending, prefix length
// ascending), per the §4.3 ordering rule. Routes sharing a prefix retain
// their relative order (sort.SliceStable).
func byNetworkOrder(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i].Prefix, routes[j].Prefix
		ai, bi := a.IP(), b.IP()
		if ai != bi {
			return ai.Less(bi)
		}
		return a.Bits() < b.Bits()
	})
}
