package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

func testRecords() []*model.InterfaceRecord {
	return []*model.InterfaceRecord{
		{
			Name: "GE 1/0/1", OriginalName: "GigabitEthernet0/0/1",
			Description: "Floor1-AP", LinkMode: model.LinkModeAccess, AccessVLAN: 10,
		},
		{
			Name: "GE 1/0/2", OriginalName: "GigabitEthernet0/0/2",
			LinkMode: model.LinkModeTrunk, TrunkVLANs: model.NewVLANSet(10, 20),
		},
		{
			Name: "GE 1/0/23", OriginalName: "GigabitEthernet0/0/23",
			Description: "To-Core", EthTrunk: 5,
		},
	}
}

func testOptions() Options {
	return Options{
		Sysname:       "BLD-A-SW1",
		ManagementIP:  "10.0.0.10",
		Gateway:       "10.0.0.1",
		AdminPassword: "secret",
	}
}

func TestSimple(t *testing.T) {
	out := New().Simple(testRecords())

	if !strings.HasPrefix(out, "system-view\n") {
		t.Errorf("missing system-view envelope:\n%s", out)
	}
	for _, want := range []string{
		"interface GE 1/0/1\n description Floor1-AP\n port link-type access\n port default vlan 10\n quit\n",
		"interface GE 1/0/2\n port link-type trunk\n port trunk allow-pass vlan 10 20\n quit\n",
		"interface GE 1/0/23\n description To-Core\n eth-trunk 5\n quit\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing block:\n%s\n\ngot:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "quit\nsave\ny\n") {
		t.Errorf("missing save trailer:\n%s", out)
	}
}

func TestComplete(t *testing.T) {
	out, stats, err := New().Complete(testRecords(), []int{5}, testOptions())
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	for _, want := range []string{
		"sysname BLD-A-SW1",
		"vlan 1000",
		"interface Vlanif1000",
		"ip address 10.0.0.10 255.255.255.0",
		"ip route-static 0.0.0.0 0.0.0.0 10.0.0.1",
		"local-user admin password irreversible-cipher ",
		"interface Eth-Trunk5",
		"interface GE 1/0/1",
		"interface GE 1/0/23",
		"eth-trunk 5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("cleartext password leaked into output")
	}
	if strings.Contains(out, "mode lacp") {
		t.Error("mode lacp rendered without --lacp")
	}
	if !strings.HasSuffix(out, "return\n") {
		t.Errorf("missing return trailer:\n%s", out)
	}

	// Eth-Trunk definitions must precede the member interfaces.
	if strings.Index(out, "interface Eth-Trunk5") > strings.Index(out, "interface GE 1/0/23") {
		t.Error("Eth-Trunk block rendered after its member interface")
	}

	want := Stats{Interfaces: 3, TrunkPorts: 1, AccessPorts: 1, EthTrunks: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestCompleteLACP(t *testing.T) {
	opts := testOptions()
	opts.LACP = true
	out, _, err := New().Complete(testRecords(), []int{5}, opts)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !strings.Contains(out, "mode lacp") {
		t.Errorf("missing mode lacp:\n%s", out)
	}
}

func TestCompleteTrunkVLANs(t *testing.T) {
	opts := testOptions()
	opts.TrunkVLANs = model.NewVLANSet(10, 20)
	out, _, err := New().Complete(testRecords(), []int{5}, opts)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	want := "interface Eth-Trunk5\n port link-type trunk\n port trunk allow-pass vlan 10 20\n"
	if !strings.Contains(out, want) {
		t.Errorf("output missing restricted Eth-Trunk block:\n%s", out)
	}

	// Unset keeps the full range.
	out, _, err = New().Complete(testRecords(), []int{5}, testOptions())
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !strings.Contains(out, "interface Eth-Trunk5\n port link-type trunk\n port trunk allow-pass vlan 2 to 4094\n") {
		t.Errorf("output missing full-range Eth-Trunk block:\n%s", out)
	}
}

func TestCompleteDeterministic(t *testing.T) {
	// Identical input must produce byte-identical output.
	a, _, err := New().Complete(testRecords(), []int{5}, testOptions())
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	b, _, err := New().Complete(testRecords(), []int{5}, testOptions())
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if a != b {
		t.Error("two renders of the same input differ")
	}
}

func TestCompleteUnitsHeader(t *testing.T) {
	opts := testOptions()
	opts.Units = []model.StackUnit{
		{Unit: 1, Host: "10.0.0.1", Capacity: 24, InterfaceCount: 3},
		{Unit: 2, Host: "10.0.0.2", Capacity: 24, Error: "connection refused"},
	}
	out, _, err := New().Complete(testRecords(), nil, opts)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !strings.Contains(out, "# unit 1: 10.0.0.1, 24 ports, 3 interfaces") {
		t.Errorf("missing unit header:\n%s", out)
	}
	if !strings.Contains(out, "[FAILED: connection refused]") {
		t.Errorf("missing failed-unit marker:\n%s", out)
	}
}

func TestCompleteValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   error
	}{
		{"missing sysname", func(o *Options) { o.Sysname = "" }, util.ErrMissingField},
		{"missing ip", func(o *Options) { o.ManagementIP = "" }, util.ErrMissingField},
		{"missing gateway", func(o *Options) { o.Gateway = "" }, util.ErrMissingField},
		{"missing password", func(o *Options) { o.AdminPassword = "" }, util.ErrMissingField},
		{"bad ip", func(o *Options) { o.ManagementIP = "not-an-ip" }, util.ErrValidationFailed},
		{"bad gateway", func(o *Options) { o.Gateway = "10.0.0" }, util.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			_, _, err := New().Complete(testRecords(), nil, opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Complete() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInterfaceLines(t *testing.T) {
	tests := []struct {
		name string
		rec  *model.InterfaceRecord
		want []string
	}{
		{
			name: "trunk all",
			rec:  &model.InterfaceRecord{LinkMode: model.LinkModeTrunk, TrunkVLANs: model.AllVLANs()},
			want: []string{"port link-type trunk", "port trunk allow-pass vlan 2 to 4094"},
		},
		{
			name: "trunk empty set renders full range",
			rec:  &model.InterfaceRecord{LinkMode: model.LinkModeTrunk},
			want: []string{"port link-type trunk", "port trunk allow-pass vlan 2 to 4094"},
		},
		{
			name: "trunk with pvid",
			rec: &model.InterfaceRecord{LinkMode: model.LinkModeTrunk, PVID: 50,
				TrunkVLANs: model.NewVLANSet(50, 60)},
			want: []string{"port link-type trunk", "port trunk pvid vlan 50",
				"port trunk allow-pass vlan 50 60"},
		},
		{
			name: "description already prefixed",
			rec:  &model.InterfaceRecord{Description: "description kept as-is"},
			want: []string{"description kept as-is"},
		},
		{
			name: "lag member ignores link type",
			rec: &model.InterfaceRecord{EthTrunk: 3, LinkMode: model.LinkModeTrunk,
				TrunkVLANs: model.NewVLANSet(10)},
			want: []string{"eth-trunk 3"},
		},
		{
			name: "speed duplex shutdown",
			rec:  &model.InterfaceRecord{Speed: "100", Duplex: "full", Shutdown: true},
			want: []string{"speed 100", "duplex full", "shutdown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterfaceLines(tt.rec)
			if len(got) != len(tt.want) {
				t.Fatalf("InterfaceLines() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	a := HashPassword("secret", "SW1")
	b := HashPassword("secret", "SW1")
	if a != b {
		t.Error("hash not deterministic")
	}
	if a == HashPassword("secret", "SW2") {
		t.Error("hash ignores sysname salt")
	}
	if a == HashPassword("other", "SW1") {
		t.Error("hash ignores password")
	}
	if strings.Contains(a, "secret") {
		t.Error("hash contains cleartext")
	}
}

func TestSuggestedFilename(t *testing.T) {
	if got := SuggestedFilename("BLD-A-SW1"); got != "BLD-A-SW1_config.txt" {
		t.Errorf("SuggestedFilename() = %q", got)
	}
}
