// Package ifname recognizes, decomposes, and translates vendor-specific
// interface identifiers.
//
// Recognition is driven by an ordered rule table: three-segment dialects
// (stack/slot/port) are tried before two-segment dialects (slot/port),
// and a greedy generic fallback comes last. The Huawei/HP three-segment
// forms and the legacy two-segment forms overlap lexically, so rule order
// is the only disambiguator; the table makes that precedence explicit
// and testable.
package ifname

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/stackshift-net/stackshift/pkg/util"
)

// AddressFormat classifies how many positional segments a dialect carries.
type AddressFormat string

const (
	// ThreeSegment is stack/slot/port, e.g. GigabitEthernet0/0/1.
	ThreeSegment AddressFormat = "three-segment"
	// SlotPort is slot/port with no stack segment, e.g. FastEthernet0/1.
	SlotPort AddressFormat = "slot-port"
	// Generic is the positional-integer fallback.
	Generic AddressFormat = "generic"
)

// ParsedName is the decomposition of a raw interface identifier.
// A dialect with no stack segment normalizes to Stack=0, never absent,
// so downstream logic has one numeric shape to reason about.
type ParsedName struct {
	Original string        `json:"original"`
	Dialect  string        `json:"dialect"`
	Prefix   string        `json:"prefix"`
	Stack    int           `json:"stack"`
	Slot     int           `json:"slot"`
	Port     int           `json:"port"`
	Format   AddressFormat `json:"format"`
}

// rule is one entry of the dialect table. match is anchored at the start
// of the string (single-name parsing); scan is the same pattern unanchored
// (bulk extraction from command output).
type rule struct {
	name   string
	format AddressFormat
	match  *regexp.Regexp
	scan   *regexp.Regexp
}

func newRule(name, pattern string, format AddressFormat) rule {
	return rule{
		name:   name,
		format: format,
		match:  regexp.MustCompile("^" + pattern),
		scan:   regexp.MustCompile(pattern),
	}
}

// dialects is tried in order. The GE rule tolerates an optional space so
// already-translated "GE 1/0/1" names parse back to the same triple,
// keeping translation idempotent.
var dialects = []rule{
	newRule("huawei-gigabitethernet", `(GigabitEthernet)(\d+)/(\d+)/(\d+)`, ThreeSegment),
	newRule("huawei-ge", `(GE) ?(\d+)/(\d+)/(\d+)`, ThreeSegment),
	newRule("huawei-ethernet", `(Ethernet)(\d+)/(\d+)/(\d+)`, ThreeSegment),
	newRule("hp-eth", `(Eth)(\d+)/(\d+)/(\d+)`, ThreeSegment),
	newRule("hp-xge", `(XGigabitEthernet)(\d+)/(\d+)/(\d+)`, ThreeSegment),
	newRule("cisco-gigabitethernet", `(GigabitEthernet)(\d+)/(\d+)`, SlotPort),
	newRule("cisco-fastethernet", `(FastEthernet)(\d+)/(\d+)`, SlotPort),
	newRule("generic", `((?:XGigabit|Gigabit|Fast)?Ethernet|Eth|GE)[\d/]+`, Generic),
}

var digits = regexp.MustCompile(`\d+`)

// Parse attempts each dialect rule in order and returns the decomposition
// of the first match, or nil when no rule recognizes the name. It never
// fails for malformed input.
func Parse(name string) *ParsedName {
	for _, d := range dialects {
		m := d.match.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		p := &ParsedName{
			Original: name,
			Dialect:  d.name,
			Prefix:   m[1],
			Format:   d.format,
		}

		switch d.format {
		case ThreeSegment:
			p.Stack = atoi(m[2])
			p.Slot = atoi(m[3])
			p.Port = atoi(m[4])
		case SlotPort:
			p.Stack = 0
			p.Slot = atoi(m[2])
			p.Port = atoi(m[3])
		default:
			// Positional fallback: first number is the stack, second the
			// slot, third the port. With fewer than three numbers the
			// rightmost one is the port.
			nums := digits.FindAllString(name, -1)
			if len(nums) > 0 {
				p.Stack = atoi(nums[0])
			}
			if len(nums) > 1 {
				p.Slot = atoi(nums[1])
			}
			switch {
			case len(nums) > 2:
				p.Port = atoi(nums[2])
			case len(nums) > 0:
				p.Port = atoi(nums[len(nums)-1])
			}
		}

		util.Debugf("parsed %q via %s: stack=%d slot=%d port=%d", name, d.name, p.Stack, p.Slot, p.Port)
		return p
	}

	util.Debugf("unrecognized interface name: %q", name)
	return nil
}

// Translate maps the parsed name to the target stack format
// "GE {unit}/{slot}/{port}". The source prefix and stack segment are
// discarded; only slot and port survive.
func (p *ParsedName) Translate(unit int) string {
	return fmt.Sprintf("GE %d/%d/%d", unit, p.Slot, p.Port)
}

// TranslateName parses and translates in one step. Unrecognized names are
// returned unchanged: translation degrades gracefully, it never fails.
func TranslateName(name string, unit int) string {
	p := Parse(name)
	if p == nil {
		util.Warnf("could not parse interface name %q, leaving unchanged", name)
		return name
	}
	return p.Translate(unit)
}

// ExtractAll scans a command-output blob and returns the deduplicated,
// sorted set of substrings matching any specific (non-generic) dialect.
// Used to tell genuine interface rows apart from noise in brief listings.
func ExtractAll(output string) []string {
	seen := make(map[string]struct{})

	for _, d := range dialects {
		if d.format == Generic {
			continue
		}
		for _, m := range d.scan.FindAllStringSubmatch(output, -1) {
			seen[m[0]] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidatePort checks a port number against the expected switch capacity.
// Advisory only: real deployments occasionally exceed nominal capacity via
// expansion modules, so the check logs but never blocks.
func ValidatePort(port, capacity int) bool {
	if port < 1 || port > capacity {
		util.Warnf("port %d exceeds %d-port switch capacity (not enforced)", port, capacity)
		return false
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
