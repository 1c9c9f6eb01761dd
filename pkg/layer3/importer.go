// Package layer3 builds normalized interface records from externally
// supplied old-port to new-port mapping rows, with no live device.
//
// All matching is best-effort text scraping: a malformed or unmatched
// cell leaves the corresponding field unset rather than failing the
// whole import.
package layer3

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

// MappingRow is one tabular row of the fixed column layout. Callers skip
// header rows before handing rows in.
type MappingRow struct {
	OldPort     string
	NewPort     string
	Description string
	EthTrunk    string
	LinkType    string
	Config1     string
	Config2     string
}

// Result carries the imported records plus the aggregate counts the
// caller reports to the user.
type Result struct {
	Records   []*model.InterfaceRecord `json:"records"`
	EthTrunks []int                    `json:"eth_trunks,omitempty"`
}

var (
	ethTrunkRe = regexp.MustCompile(`(?i)eth-trunk\s*(\d+)`)
	vlanRe     = regexp.MustCompile(`vlan\s+(\d+)`)
	pvidRe     = regexp.MustCompile(`pvid\s+vlan\s+(\d+)`)
	digitsRe   = regexp.MustCompile(`\d+`)
)

// Import converts mapping rows into interface records. Rows whose
// new-port column is empty or is not an interface declaration are
// skipped. Trunk membership of "2 to 4094" is normalized to the full
// range; any other allow-pass content is collected as explicit IDs.
func Import(rows []MappingRow) *Result {
	res := &Result{}
	trunkGroups := make(map[int]struct{})

	for _, row := range rows {
		newPort := strings.TrimSpace(row.NewPort)
		if newPort == "" || !strings.HasPrefix(newPort, "interface") {
			continue
		}

		rec := &model.InterfaceRecord{
			Name:         strings.TrimSpace(strings.TrimPrefix(newPort, "interface")),
			OriginalName: strings.TrimSpace(row.OldPort),
			Description:  strings.TrimSpace(row.Description),
		}

		if m := ethTrunkRe.FindStringSubmatch(row.EthTrunk); m != nil {
			rec.EthTrunk = atoi(m[1])
			trunkGroups[rec.EthTrunk] = struct{}{}
		}

		linkType := strings.ToLower(row.LinkType)
		if strings.Contains(linkType, "trunk") {
			rec.LinkMode = model.LinkModeTrunk
		} else if strings.Contains(linkType, "access") {
			rec.LinkMode = model.LinkModeAccess
		}

		// pvid first: a "pvid vlan N" cell also matches the plain vlan
		// pattern and must not be mistaken for an access VLAN.
		if m := pvidRe.FindStringSubmatch(row.Config1); m != nil {
			rec.PVID = atoi(m[1])
		} else if m := vlanRe.FindStringSubmatch(row.Config1); m != nil {
			rec.AccessVLAN = atoi(m[1])
		}

		if strings.Contains(strings.ToLower(row.Config2), "allow-pass") {
			if strings.Contains(row.Config2, "2 to 4094") {
				rec.TrunkVLANs = model.AllVLANs()
			} else if ids := allInts(row.Config2); len(ids) > 0 {
				rec.TrunkVLANs = model.NewVLANSet(ids...)
			}
		}

		res.Records = append(res.Records, rec)
	}

	for g := range trunkGroups {
		res.EthTrunks = append(res.EthTrunks, g)
	}
	sort.Ints(res.EthTrunks)

	util.Infof("imported %d port mappings, %d eth-trunks", len(res.Records), len(res.EthTrunks))
	return res
}

func allInts(s string) []int {
	var out []int
	for _, m := range digitsRe.FindAllString(s, -1) {
		out = append(out, atoi(m))
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
