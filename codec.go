package routingtable

import (
	"github.com/ahmad-rateb/routingtable/internal/bitstring"
	"inet.af/netaddr"
)

// ParsePrefix parses s as a CIDR prefix, non-strictly: any host bits set
// beyond the mask are dropped, yielding the covering network. This mirrors
// the Python original's ip_network(prefix, strict=False).
func ParsePrefix(s string) (netaddr.IPPrefix, error) {
	p, err := netaddr.ParseIPPrefix(s)
	if err != nil {
		return netaddr.IPPrefix{}, newInvalidAddressError(s, err)
	}
	return p.Masked(), nil
}

// ParseAddr parses s as a single IP address.
func ParseAddr(s string) (netaddr.IP, error) {
	ip, err := netaddr.ParseIP(s)
	if err != nil {
		return netaddr.IP{}, newInvalidAddressError(s, err)
	}
	return ip, nil
}

// asPrefix accepts either a textual CIDR or an already-parsed IPPrefix,
// the two forms every public operation takes for its prefix argument. It
// always re-masks, so callers never need to worry about host bits.
func asPrefix(v any) (netaddr.IPPrefix, error) {
	switch p := v.(type) {
	case netaddr.IPPrefix:
		return p.Masked(), nil
	case string:
		return ParsePrefix(p)
	default:
		return netaddr.IPPrefix{}, newInvalidAddressError("", nil)
	}
}

// bits returns the big-endian bit-string of prefix's network id, of
// length prefix.Bits().
func bits(prefix netaddr.IPPrefix) bitstring.BitString {
	ip := prefix.IP()
	var raw []byte
	if ip.Is4() {
		b := ip.As4()
		raw = b[:]
	} else {
		b := ip.As16()
		raw = b[:]
	}
	full := bitstring.FromBytes(raw)
	return full[:prefix.Bits()]
}

// boundaries returns the inclusive integer range [network_id, broadcast]
// covered by prefix.
func boundaries(prefix netaddr.IPPrefix) (lo, hi netaddr.IP) {
	r := prefix.Range()
	return r.From(), r.To()
}

// wildcardBoundaries returns [address, address|wildcard], the inclusive
// range covered by a wildcard-mask match.
func wildcardBoundaries(address, wildcard netaddr.IP) (lo, hi netaddr.IP, err error) {
	if address.Is4() != wildcard.Is4() {
		return netaddr.IP{}, netaddr.IP{}, newInvalidAddressError(wildcard.String(), nil)
	}
	if address.Is4() {
		a, w := address.As4(), wildcard.As4()
		var o [4]byte
		for i := range o {
			o[i] = a[i] | w[i]
		}
		return address, netaddr.IPFrom4(o), nil
	}
	a, w := address.As16(), wildcard.As16()
	var o [16]byte
	for i := range o {
		o[i] = a[i] | w[i]
	}
	return address, netaddr.IPFrom16(o), nil
}
