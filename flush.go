package routingtable

// flushByAttrs implements the attrs-only form of Flush (§4.8) for either
// engine: it snapshots every installed Route first, then calls Delete
// once per distinct prefix that has at least one attrs-matching Route,
// letting Delete's own structural pruning (§4.5/§4.7) handle the rest.
// Snapshotting up front avoids walking a trie that Delete is concurrently
// restructuring underneath the traversal.
func flushByAttrs(t RoutingTable, attrs Attrs) error {
	all := t.Slice()

	seen := make(map[any]bool, len(all))
	for _, r := range all {
		if seen[r.Prefix] {
			continue
		}
		seen[r.Prefix] = true

		matched := false
		for _, other := range all {
			if other.Prefix == r.Prefix && Matches(other, attrs) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if err := t.Delete(r.Prefix, attrs); err != nil {
			return err
		}
	}
	return nil
}
