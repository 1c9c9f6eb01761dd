// Package inventory loads the YAML description of a stack migration:
// which switches to read, their assigned unit numbers, and capacities.
package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stackshift-net/stackshift/pkg/util"
)

// Switch is one source device in the inventory.
type Switch struct {
	Host     string `yaml:"host"`
	Unit     int    `yaml:"unit"`
	Capacity int    `yaml:"capacity"`

	// Username and Password override the inventory-level defaults.
	// A switch with no password anywhere triggers an interactive prompt.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Inventory is the top-level YAML document.
type Inventory struct {
	StackName string `yaml:"stack_name"`

	// Username and Password apply to every switch that does not override
	// them.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	Switches []Switch `yaml:"switches"`
}

// knownCapacities are the SKUs this tool has filtering rules for. Others
// are accepted with a warning; capacity checks are advisory throughout.
var knownCapacities = map[int]bool{8: true, 24: true, 48: true}

// Load reads and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Validate checks the structural invariants: a stack name, at least one
// switch, positive unique unit numbers, and a host per switch.
func (inv *Inventory) Validate() error {
	v := &util.ValidationBuilder{}

	v.Add(inv.StackName != "", "stack_name is required")
	v.Add(len(inv.Switches) > 0, "at least one switch is required")

	seen := make(map[int]bool)
	for i, sw := range inv.Switches {
		if sw.Host == "" {
			v.AddErrorf("switch %d: host is required", i+1)
		}
		if sw.Unit <= 0 {
			v.AddErrorf("switch %d (%s): unit must be a positive integer", i+1, sw.Host)
		} else if seen[sw.Unit] {
			v.AddErrorf("switch %d (%s): duplicate unit number %d", i+1, sw.Host, sw.Unit)
		}
		seen[sw.Unit] = true

		if sw.Capacity <= 0 {
			v.AddErrorf("switch %d (%s): capacity is required", i+1, sw.Host)
		} else if !knownCapacities[sw.Capacity] {
			util.Warnf("switch %s: unusual port capacity %d (no SKU-specific uplink rules)", sw.Host, sw.Capacity)
		}
	}

	return v.Build()
}

// CredentialsFor resolves the effective username and password for a
// switch, falling back to the inventory-level defaults.
func (inv *Inventory) CredentialsFor(sw Switch) (string, string) {
	user := sw.Username
	if user == "" {
		user = inv.Username
	}
	pass := sw.Password
	if pass == "" {
		pass = inv.Password
	}
	return user, pass
}
