// Package model defines the domain models for switch migration.
package model

// LinkMode is the L2 mode of a switchport.
type LinkMode string

const (
	LinkModeUnset  LinkMode = ""
	LinkModeAccess LinkMode = "access"
	LinkModeTrunk  LinkMode = "trunk"
)

// InterfaceRecord is the normalized per-interface configuration produced
// by the config block parser or the layer-3 mapping importer.
//
// Invariant: access ports have no trunk VLANs; trunk ports have no access
// VLAN. The parser enforces this by keying off the last link-type fact seen.
type InterfaceRecord struct {
	// Name is the current identifier; after translation it is in the
	// target "GE u/s/p" form. OriginalName preserves the pre-translation
	// identifier for audit.
	Name         string `json:"name"`
	OriginalName string `json:"original_name,omitempty"`

	Description string   `json:"description,omitempty"`
	LinkMode    LinkMode `json:"link_mode,omitempty"`
	AccessVLAN  int      `json:"access_vlan,omitempty"`
	TrunkVLANs  VLANSet  `json:"trunk_vlans,omitempty"`
	PVID        int      `json:"pvid,omitempty"`

	// EthTrunk is the aggregation group this port belongs to (0 = none).
	EthTrunk int `json:"eth_trunk,omitempty"`

	Speed    string `json:"speed,omitempty"`
	Duplex   string `json:"duplex,omitempty"`
	Shutdown bool   `json:"shutdown,omitempty"`

	// RawLines holds every non-comment line of the source block verbatim,
	// so unrecognized configuration survives round-trip display.
	RawLines []string `json:"raw_lines,omitempty"`
}

// IsAccess returns true for access-mode ports.
func (r *InterfaceRecord) IsAccess() bool {
	return r.LinkMode == LinkModeAccess
}

// IsTrunk returns true for trunk-mode ports.
func (r *InterfaceRecord) IsTrunk() bool {
	return r.LinkMode == LinkModeTrunk
}

// IsLAGMember returns true when the port belongs to an Eth-Trunk group.
func (r *InterfaceRecord) IsLAGMember() bool {
	return r.EthTrunk > 0
}

// ObservedVLANs returns the set of VLANs this record references: the
// access VLAN, the PVID, and any trunk membership.
func (r *InterfaceRecord) ObservedVLANs() VLANSet {
	s := VLANSet{}
	if r.AccessVLAN > 0 {
		s.Add(r.AccessVLAN)
	}
	if r.PVID > 0 {
		s.Add(r.PVID)
	}
	s.Union(r.TrunkVLANs)
	return s
}

// BriefEntry is one row of a "display interface brief" listing.
type BriefEntry struct {
	Name           string `json:"name"`
	PhysicalStatus string `json:"physical_status"`
	ProtocolStatus string `json:"protocol_status"`
}
