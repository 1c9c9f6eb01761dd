// Package confparse turns raw switch CLI output into structured records.
//
// The interface config parser treats a block as an unordered set of
// line-level facts rather than a strict grammar: recognized lines set
// structured fields, unrecognized lines are preserved verbatim, and
// malformed input never fails the parse.
package confparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stackshift-net/stackshift/pkg/ifname"
	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

var (
	vlanRe   = regexp.MustCompile(`vlan\s+(\d+)`)
	digitsRe = regexp.MustCompile(`\d+`)
	briefRe  = regexp.MustCompile(`^([\w/]+)\s+(\S+)\s+(\S+)`)
)

// ParseInterfaceConfig parses the output of
// "display current-configuration interface X" into an InterfaceRecord.
//
// Both Huawei and HP spellings are recognized for access VLANs
// ("port default vlan" / "port access vlan") and trunk membership
// ("port trunk allow-pass vlan" / "port trunk permit vlan").
//
// Inference rule: real-world configurations sometimes omit the
// "port link-type" line entirely. An access-VLAN line on a port with no
// explicit link type implies access mode; a trunk-permit line implies
// trunk mode. This repair is deliberate, not incidental.
//
// A block with no interface-name line yields a record with an empty Name;
// callers treat that as an unparseable block, not an error.
func ParseInterfaceConfig(output string) *model.InterfaceRecord {
	rec := &model.InterfaceRecord{}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "interface "):
			fields := strings.Fields(line)
			if len(fields) > 1 {
				rec.Name = strings.Join(fields[1:], " ")
			}

		case strings.HasPrefix(line, "description "):
			rec.Description = strings.TrimPrefix(line, "description ")

		case strings.Contains(line, "port link-type"):
			if strings.Contains(line, "access") {
				rec.LinkMode = model.LinkModeAccess
			} else if strings.Contains(line, "trunk") {
				rec.LinkMode = model.LinkModeTrunk
			}

		case strings.Contains(line, "port default vlan") || strings.Contains(line, "port access vlan"):
			if m := vlanRe.FindStringSubmatch(line); m != nil {
				rec.AccessVLAN = atoi(m[1])
				if rec.LinkMode == model.LinkModeUnset {
					rec.LinkMode = model.LinkModeAccess
				}
			}

		case strings.Contains(line, "port trunk allow-pass vlan") || strings.Contains(line, "port trunk permit vlan"):
			if rec.LinkMode == model.LinkModeUnset {
				rec.LinkMode = model.LinkModeTrunk
			}
			if strings.Contains(strings.ToLower(line), "vlan all") {
				rec.TrunkVLANs = model.AllVLANs()
			} else {
				rec.TrunkVLANs = model.NewVLANSet(allInts(line)...)
			}

		case strings.HasPrefix(line, "eth-trunk "):
			if m := digitsRe.FindString(line); m != "" {
				rec.EthTrunk = atoi(m)
			}

		case strings.HasPrefix(line, "speed "):
			rec.Speed = strings.Fields(line)[1]

		case strings.HasPrefix(line, "duplex "):
			rec.Duplex = strings.Fields(line)[1]

		case line == "shutdown":
			rec.Shutdown = true
		}

		if line != "" && !strings.HasPrefix(line, "#") {
			rec.RawLines = append(rec.RawLines, line)
		}
	}

	util.Debugf("parsed configuration block for interface %q", rec.Name)
	return rec
}

// ParseInterfaceBrief parses "display interface brief" output. Genuine
// interface rows are recognized by matching the line start against the
// set of names the dialect rules extracted from the whole blob, which
// keeps headers and counters out of the result.
func ParseInterfaceBrief(output string) []model.BriefEntry {
	names := ifname.ExtractAll(output)

	var entries []model.BriefEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		for _, name := range names {
			if !strings.HasPrefix(line, name) {
				continue
			}
			if m := briefRe.FindStringSubmatch(line); m != nil {
				entries = append(entries, model.BriefEntry{
					Name:           m[1],
					PhysicalStatus: m[2],
					ProtocolStatus: m[3],
				})
			}
			break
		}
	}

	util.Debugf("parsed %d interfaces from brief output", len(entries))
	return entries
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
