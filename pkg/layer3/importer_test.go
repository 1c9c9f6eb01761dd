package layer3

import (
	"reflect"
	"testing"

	"github.com/stackshift-net/stackshift/pkg/model"
)

func TestImport(t *testing.T) {
	rows := []MappingRow{
		// Annotation rows and blanks are skipped.
		{OldPort: "old port", NewPort: "new port"},
		{OldPort: "GigabitEthernet1/0/1", NewPort: ""},
		{
			OldPort:     "XGigabitEthernet1/0/1",
			NewPort:     "interface GE 1/0/1",
			Description: "To-Core",
			EthTrunk:    "Eth-Trunk 5",
			LinkType:    "port link-type trunk",
			Config2:     "port trunk allow-pass vlan 2 to 4094",
		},
		{
			OldPort:  "GigabitEthernet1/0/10",
			NewPort:  "interface GE 1/0/10",
			LinkType: "access",
			Config1:  "port default vlan 100",
		},
		{
			OldPort:  "GigabitEthernet1/0/11",
			NewPort:  "interface GE 1/0/11",
			LinkType: "Trunk",
			Config1:  "port trunk pvid vlan 50",
			Config2:  "port trunk allow-pass vlan 50 60",
		},
	}

	res := Import(rows)

	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}

	lag := res.Records[0]
	if lag.Name != "GE 1/0/1" || lag.OriginalName != "XGigabitEthernet1/0/1" {
		t.Errorf("names = %q/%q", lag.Name, lag.OriginalName)
	}
	if lag.EthTrunk != 5 {
		t.Errorf("EthTrunk = %d, want 5", lag.EthTrunk)
	}
	if !lag.IsTrunk() {
		t.Errorf("LinkMode = %q, want trunk", lag.LinkMode)
	}
	if !lag.TrunkVLANs.All {
		t.Error("TrunkVLANs.All = false, want true for 2 to 4094")
	}

	access := res.Records[1]
	if !access.IsAccess() || access.AccessVLAN != 100 {
		t.Errorf("access record = %q vlan %d, want access 100", access.LinkMode, access.AccessVLAN)
	}

	pvid := res.Records[2]
	if pvid.PVID != 50 {
		t.Errorf("PVID = %d, want 50", pvid.PVID)
	}
	if pvid.AccessVLAN != 0 {
		t.Errorf("AccessVLAN = %d, want 0 on a pvid row", pvid.AccessVLAN)
	}
	if want := []int{50, 60}; !reflect.DeepEqual(pvid.TrunkVLANs.IDs, want) {
		t.Errorf("TrunkVLANs = %v, want %v", pvid.TrunkVLANs.IDs, want)
	}

	if want := []int{5}; !reflect.DeepEqual(res.EthTrunks, want) {
		t.Errorf("EthTrunks = %v, want %v", res.EthTrunks, want)
	}
}

func TestImportEmpty(t *testing.T) {
	res := Import(nil)
	if len(res.Records) != 0 || len(res.EthTrunks) != 0 {
		t.Errorf("Import(nil) = %+v, want empty result", res)
	}
}

func TestImportCaseInsensitiveEthTrunk(t *testing.T) {
	rows := []MappingRow{{
		NewPort:  "interface GE 2/0/1",
		EthTrunk: "eth-trunk10",
	}}
	res := Import(rows)
	if res.Records[0].EthTrunk != 10 {
		t.Errorf("EthTrunk = %d, want 10", res.Records[0].EthTrunk)
	}
	if want := []int{10}; !reflect.DeepEqual(res.EthTrunks, want) {
		t.Errorf("EthTrunks = %v, want %v", res.EthTrunks, want)
	}
}

func TestImportUnsetLinkType(t *testing.T) {
	rows := []MappingRow{{NewPort: "interface GE 1/0/2"}}
	res := Import(rows)
	if res.Records[0].LinkMode != model.LinkModeUnset {
		t.Errorf("LinkMode = %q, want unset", res.Records[0].LinkMode)
	}
}
