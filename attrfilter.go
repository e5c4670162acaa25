package routingtable

// Matches reports whether route satisfies every (key, value) pair in
// attrs. An absent attribute key, or a present key with a different
// value, fails the match. An empty or nil attrs filter is vacuously
// satisfied by every route.
func Matches(route Route, attrs Attrs) bool {
	for k, v := range attrs {
		rv, ok := route.Attrs[k]
		if !ok || rv != v {
			return false
		}
	}
	return true
}

// filterRoutes returns the subset of routes satisfying attrs, preserving
// order.
func filterRoutes(routes []Route, attrs Attrs) []Route {
	if len(attrs) == 0 {
		out := make([]Route, len(routes))
		copy(out, routes)
		return out
	}
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		if Matches(r, attrs) {
			out = append(out, r)
		}
	}
	return out
}
