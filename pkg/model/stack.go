package model

// StackUnit describes one physical switch contributing to a stack.
type StackUnit struct {
	// Unit is the caller-assigned stack unit number, unique within a stack.
	Unit int `json:"unit"`

	// Host is the management address the unit was reached on.
	Host string `json:"host"`

	// Capacity is the nominal access port count (24/48/8/...). It determines
	// the uplink-port cutoff during aggregation.
	Capacity int `json:"capacity"`

	// Method records how the unit was reached (SSH or Telnet). Informational.
	Method string `json:"method,omitempty"`

	InterfaceCount int     `json:"interface_count"`
	VLANs          VLANSet `json:"vlans,omitempty"`

	// Error marks a non-fatal per-unit failure (e.g. unreachable device).
	// A failed unit contributes zero interfaces but does not abort the stack.
	Error string `json:"error,omitempty"`
}

// Failed returns true when the unit could not be processed.
func (u *StackUnit) Failed() bool {
	return u.Error != ""
}

// Stack is the aggregate of all units, handed immutable to the renderer.
type Stack struct {
	Name string `json:"name"`

	// Units in the order they were supplied.
	Units []StackUnit `json:"units"`

	// Interfaces across all units, post-translation, grouped by unit in
	// supply order. Names are unique within the stack.
	Interfaces []*InterfaceRecord `json:"interfaces"`

	// VLANs is the union of every VLAN observed on any unit.
	VLANs VLANSet `json:"vlans,omitempty"`

	// EthTrunks lists the aggregation group IDs referenced by any
	// interface, sorted ascending.
	EthTrunks []int `json:"eth_trunks,omitempty"`
}

// FailedUnits returns the units that could not be processed.
func (s *Stack) FailedUnits() []StackUnit {
	var failed []StackUnit
	for _, u := range s.Units {
		if u.Failed() {
			failed = append(failed, u)
		}
	}
	return failed
}
