package stack

import (
	"strings"

	"github.com/stackshift-net/stackshift/pkg/ifname"
)

// exclusionRule decides whether a parsed interface is an uplink that must
// never be renumbered as an access port for a given hardware capacity.
type exclusionRule func(p *ifname.ParsedName) bool

// capacityRules maps port capacity to SKU-specific exclusions, applied on
// top of the universal port-number cutoff. Kept as a table rather than a
// branch so further SKUs can be added alongside the 8-port case.
var capacityRules = map[int]exclusionRule{
	// On the 8-port SKU the nominal Ethernet ports share numbering with a
	// dedicated GigabitEthernet uplink module; every GigabitEthernet-
	// prefixed interface on those units is an uplink.
	8: func(p *ifname.ParsedName) bool {
		return strings.EqualFold(p.Prefix, "GigabitEthernet")
	},
}

// Excluded reports whether the interface is an uplink for a unit with the
// given capacity: either its port number exceeds the capacity, or a
// SKU-specific rule rejects it.
func Excluded(p *ifname.ParsedName, capacity int) bool {
	if p.Port > capacity {
		return true
	}
	if rule, ok := capacityRules[capacity]; ok && rule(p) {
		return true
	}
	return false
}
