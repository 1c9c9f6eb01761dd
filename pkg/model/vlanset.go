package model

import (
	"sort"

	"github.com/stackshift-net/stackshift/pkg/util"
)

// Usable VLAN range on the target platform. "Allow all" trunk lines
// mean every VLAN from FirstVLAN to LastVLAN.
const (
	FirstVLAN = 2
	LastVLAN  = 4094
)

// VLANSet is a set of VLAN IDs. The full 2-4094 range is representable
// via the All flag without materializing 4093 integers; consumers that
// need the explicit list call Expand.
type VLANSet struct {
	All bool  `json:"all,omitempty"`
	IDs []int `json:"ids,omitempty"`
}

// NewVLANSet creates a set from explicit IDs (deduplicated, sorted).
func NewVLANSet(ids ...int) VLANSet {
	s := VLANSet{}
	s.Add(ids...)
	return s
}

// AllVLANs returns the set representing the full 2-4094 range.
func AllVLANs() VLANSet {
	return VLANSet{All: true}
}

// Add inserts IDs into the set. No-op when the set already covers all VLANs.
func (s *VLANSet) Add(ids ...int) {
	if s.All || len(ids) == 0 {
		return
	}
	s.IDs = append(s.IDs, ids...)
	sort.Ints(s.IDs)
	s.IDs = util.DedupInts(s.IDs)
}

// Union merges other into s.
func (s *VLANSet) Union(other VLANSet) {
	if other.All {
		s.All = true
		s.IDs = nil
		return
	}
	s.Add(other.IDs...)
}

// Contains reports whether the set includes the given VLAN.
func (s VLANSet) Contains(id int) bool {
	if s.All {
		return id >= FirstVLAN && id <= LastVLAN
	}
	i := sort.SearchInts(s.IDs, id)
	return i < len(s.IDs) && s.IDs[i] == id
}

// IsEmpty reports whether the set holds no VLANs.
func (s VLANSet) IsEmpty() bool {
	return !s.All && len(s.IDs) == 0
}

// Expand materializes the set as a sorted slice. For All sets this
// produces the full 2-4094 range.
func (s VLANSet) Expand() []int {
	if s.All {
		ids := make([]int, 0, LastVLAN-FirstVLAN+1)
		for v := FirstVLAN; v <= LastVLAN; v++ {
			ids = append(ids, v)
		}
		return ids
	}
	out := make([]int, len(s.IDs))
	copy(out, s.IDs)
	return out
}

// Summary returns a compact human-readable form, e.g. "10,20-30" or "all".
func (s VLANSet) Summary() string {
	if s.All {
		return "all"
	}
	return util.CompactRange(s.IDs)
}
