package confparse

import (
	"reflect"
	"testing"

	"github.com/stackshift-net/stackshift/internal/testutil"
	"github.com/stackshift-net/stackshift/pkg/model"
)

func TestParseInterfaceConfigAccess(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.AccessBlock)

	if rec.Name != "GigabitEthernet0/0/2" {
		t.Errorf("Name = %q, want GigabitEthernet0/0/2", rec.Name)
	}
	if rec.Description != "Floor2-Printer" {
		t.Errorf("Description = %q", rec.Description)
	}
	if !rec.IsAccess() || rec.AccessVLAN != 20 {
		t.Errorf("mode = %q vlan = %d, want access 20", rec.LinkMode, rec.AccessVLAN)
	}
	if rec.Speed != "100" || rec.Duplex != "full" {
		t.Errorf("speed/duplex = %q/%q, want 100/full", rec.Speed, rec.Duplex)
	}
	if rec.Shutdown {
		t.Error("Shutdown = true, want false")
	}
}

func TestParseInterfaceConfigTrunk(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.TrunkBlock)

	if rec.Name != "GigabitEthernet0/0/5" {
		t.Errorf("Name = %q", rec.Name)
	}
	if !rec.IsTrunk() {
		t.Errorf("LinkMode = %q, want trunk", rec.LinkMode)
	}
	if want := []int{10, 20}; !reflect.DeepEqual(rec.TrunkVLANs.IDs, want) {
		t.Errorf("TrunkVLANs = %v, want %v", rec.TrunkVLANs.IDs, want)
	}
	if rec.TrunkVLANs.All {
		t.Error("TrunkVLANs.All = true for explicit list")
	}
}

func TestParseInterfaceConfigInference(t *testing.T) {
	t.Run("access vlan implies access mode", func(t *testing.T) {
		rec := ParseInterfaceConfig(testutil.ImplicitAccessBlock)
		if !rec.IsAccess() {
			t.Errorf("LinkMode = %q, want inferred access", rec.LinkMode)
		}
		if rec.AccessVLAN != 30 {
			t.Errorf("AccessVLAN = %d, want 30", rec.AccessVLAN)
		}
	})

	t.Run("trunk permit implies trunk mode", func(t *testing.T) {
		rec := ParseInterfaceConfig("interface Eth1/0/2\n port trunk permit vlan 5\n")
		if !rec.IsTrunk() {
			t.Errorf("LinkMode = %q, want inferred trunk", rec.LinkMode)
		}
	})
}

func TestParseInterfaceConfigTrunkAll(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.HPTrunkAllBlock)

	if !rec.IsTrunk() {
		t.Errorf("LinkMode = %q, want trunk", rec.LinkMode)
	}
	if !rec.TrunkVLANs.All {
		t.Error("TrunkVLANs.All = false, want true for vlan all")
	}
	if len(rec.TrunkVLANs.IDs) != 0 {
		t.Errorf("TrunkVLANs.IDs = %v, want empty alongside All", rec.TrunkVLANs.IDs)
	}
}

func TestParseInterfaceConfigEthTrunk(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.LAGMemberBlock)

	if rec.EthTrunk != 5 {
		t.Errorf("EthTrunk = %d, want 5", rec.EthTrunk)
	}
	if !rec.IsLAGMember() {
		t.Error("IsLAGMember() = false")
	}
}

func TestParseInterfaceConfigShutdown(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.ShutdownBlock)
	if !rec.Shutdown {
		t.Error("Shutdown = false, want true")
	}
}

func TestParseInterfaceConfigRawLines(t *testing.T) {
	rec := ParseInterfaceConfig(testutil.AccessBlock)

	want := []string{
		"interface GigabitEthernet0/0/2",
		"description Floor2-Printer",
		"port link-type access",
		"port default vlan 20",
		"speed 100",
		"duplex full",
		"return",
	}
	if !reflect.DeepEqual(rec.RawLines, want) {
		t.Errorf("RawLines = %v, want %v", rec.RawLines, want)
	}
}

func TestParseInterfaceConfigMalformed(t *testing.T) {
	// Garbage never fails; it just yields an unnamed record.
	for _, in := range []string{"", "Error: too many parameters", "#\n#\n"} {
		rec := ParseInterfaceConfig(in)
		if rec == nil {
			t.Fatalf("ParseInterfaceConfig(%q) = nil", in)
		}
		if rec.Name != "" {
			t.Errorf("ParseInterfaceConfig(%q).Name = %q, want empty", in, rec.Name)
		}
	}
}

func TestParseInterfaceBrief(t *testing.T) {
	entries := ParseInterfaceBrief(testutil.HuaweiBrief)

	want := []model.BriefEntry{
		{Name: "GigabitEthernet0/0/1", PhysicalStatus: "up", ProtocolStatus: "up"},
		{Name: "GigabitEthernet0/0/2", PhysicalStatus: "down", ProtocolStatus: "down"},
		{Name: "GigabitEthernet0/0/3", PhysicalStatus: "*down", ProtocolStatus: "down"},
		{Name: "GigabitEthernet0/0/24", PhysicalStatus: "up", ProtocolStatus: "up"},
		{Name: "GigabitEthernet0/0/25", PhysicalStatus: "up", ProtocolStatus: "up"},
		{Name: "GigabitEthernet0/0/28", PhysicalStatus: "up", ProtocolStatus: "up"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("ParseInterfaceBrief() = %v, want %v", entries, want)
	}
}

func TestParseInterfaceBriefHP(t *testing.T) {
	entries := ParseInterfaceBrief(testutil.HPBrief)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"Eth1/0/1", "Eth1/0/2", "Eth1/0/8", "GigabitEthernet1/0/1"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("brief names = %v, want %v", names, want)
	}
}
