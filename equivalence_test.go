package routingtable

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equivalenceFixture is a scenario run against both engines with the
// expectation that every §4.3 operation returns the same set of
// prefixes regardless of which trie shape backs the table.
type equivalenceFixture struct {
	prefix string
	attrs  Attrs
}

func newEquivalenceTables(t *testing.T, fixtures []equivalenceFixture) (RoutingTable, RoutingTable) {
	t.Helper()
	pt := NewPrefixTrie()
	rt := NewRadixTrie()
	for _, f := range fixtures {
		require.NoError(t, pt.Add(f.prefix, f.attrs))
		require.NoError(t, rt.Add(f.prefix, f.attrs))
	}
	return pt, rt
}

func sortedPrefixStrings(routes []Route) []string {
	out := prefixStrings(routes)
	sort.Strings(out)
	return out
}

func TestEquivalenceGet(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"10.0.0.0/8", nil},
		{"10.1.0.0/16", nil},
		{"10.1.1.0/24", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	for _, target := range []string{"10.1.1.5/32", "10.1.2.1/32", "10.2.0.1/32", "11.0.0.1/32"} {
		got1, err1 := pt.Get(target, nil)
		require.NoError(t, err1)
		got2, err2 := rt.Get(target, nil)
		require.NoError(t, err2)
		assert.Equal(t, sortedPrefixStrings(got1), sortedPrefixStrings(got2), "Get(%s)", target)
	}
}

func TestEquivalenceMatch(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"2a01:db8::/32", nil},
		{"2a01:db8:acad::/48", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	got1, err1 := pt.Match("2a01:db8:acad:1::/64", nil)
	require.NoError(t, err1)
	got2, err2 := rt.Match("2a01:db8:acad:1::/64", nil)
	require.NoError(t, err2)
	assert.Equal(t, sortedPrefixStrings(got1), sortedPrefixStrings(got2))
}

func TestEquivalenceParentChildren(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"192.168.0.0/23", nil},
		{"192.168.0.0/24", nil},
		{"192.168.1.0/24", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	ptChildren, err := pt.Children("192.168.0.0/23", nil)
	require.NoError(t, err)
	rtChildren, err := rt.Children("192.168.0.0/23", nil)
	require.NoError(t, err)
	assert.Equal(t, sortedPrefixStrings(ptChildren), sortedPrefixStrings(rtChildren))

	ptParent, err := pt.Parent("192.168.0.0/24", nil)
	require.NoError(t, err)
	rtParent, err := rt.Parent("192.168.0.0/24", nil)
	require.NoError(t, err)
	assert.Equal(t, sortedPrefixStrings(ptParent), sortedPrefixStrings(rtParent))
}

func TestEquivalenceWildcardMatch(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"192.168.0.0/24", nil},
		{"192.168.1.0/24", nil},
		{"192.168.4.0/24", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	got1, err1 := pt.WildcardMatch("192.168.0.0", "0.0.3.255", nil)
	require.NoError(t, err1)
	got2, err2 := rt.WildcardMatch("192.168.0.0", "0.0.3.255", nil)
	require.NoError(t, err2)
	assert.Equal(t, sortedPrefixStrings(got1), sortedPrefixStrings(got2))
}

func TestEquivalenceDeleteAndLen(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"10.0.0.0/8", Attrs{"via": "A"}},
		{"10.128.0.0/9", Attrs{"via": "B"}},
		{"192.168.0.0/24", nil},
		{"192.168.1.0/24", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	require.NoError(t, pt.Delete("10.128.0.0/9", nil))
	require.NoError(t, rt.Delete("10.128.0.0/9", nil))

	require.NoError(t, pt.Delete("192.168.1.0/24", nil))
	require.NoError(t, rt.Delete("192.168.1.0/24", nil))

	assert.Equal(t, pt.Len(), rt.Len())
	assert.Equal(t, sortedPrefixStrings(pt.Slice()), sortedPrefixStrings(rt.Slice()))
}

func TestEquivalenceFlushByAttrs(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"10.0.0.0/8", Attrs{"via": "A"}},
		{"10.0.0.0/8", Attrs{"via": "B"}},
		{"10.1.0.0/16", Attrs{"via": "A"}},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	require.NoError(t, pt.Flush(nil, Attrs{"via": "A"}))
	require.NoError(t, rt.Flush(nil, Attrs{"via": "A"}))

	assert.Equal(t, pt.Len(), rt.Len())
	assert.Equal(t, sortedPrefixStrings(pt.Slice()), sortedPrefixStrings(rt.Slice()))
}

func TestEquivalenceContains(t *testing.T) {
	fixtures := []equivalenceFixture{
		{"10.0.0.0/8", nil},
		{"10.1.0.0/16", nil},
	}
	pt, rt := newEquivalenceTables(t, fixtures)

	for _, p := range []string{"10.0.0.0/8", "10.1.0.0/16", "10.2.0.0/16"} {
		c1, err1 := pt.Contains(p)
		require.NoError(t, err1)
		c2, err2 := rt.Contains(p)
		require.NoError(t, err2)
		assert.Equal(t, c1, c2, "Contains(%s)", p)
	}
}
