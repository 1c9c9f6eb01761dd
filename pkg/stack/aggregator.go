// Package stack merges per-switch interface records into one logical stack.
package stack

import (
	"sort"

	"github.com/stackshift-net/stackshift/pkg/ifname"
	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

// UnitInput is the per-switch material the aggregator consumes: identity,
// capacity, the untranslated records parsed from its configuration, and
// an optional transport failure. Failed units are carried through as data
// so a partial stack still aggregates.
type UnitInput struct {
	Host     string
	Unit     int
	Capacity int
	Method   string
	Records  []*model.InterfaceRecord
	Err      error
}

// Aggregate builds a Stack from per-unit inputs. Units are processed in
// the order supplied and interfaces stay grouped by unit.
//
// Per unit: uplinks are excluded (port beyond capacity, plus SKU-specific
// rules), surviving interfaces are translated with the unit's number, and
// every observed VLAN is unioned into the unit's and the stack's sets.
// A unit-level error marks that unit failed without aborting the rest.
//
// Duplicate unit numbers and post-translation name collisions indicate a
// unit-numbering error upstream and fail the whole aggregation.
func Aggregate(name string, inputs []UnitInput) (*model.Stack, error) {
	st := &model.Stack{Name: name}

	seenUnits := make(map[int]int)      // unit number -> index in inputs
	seenNames := make(map[string]int)   // translated name -> unit number
	trunkGroups := make(map[int]struct{})

	for i, in := range inputs {
		if prev, dup := seenUnits[in.Unit]; dup {
			return nil, &util.UnitConflictError{
				UnitA:   inputs[prev].Unit,
				UnitB:   in.Unit,
				Subject: "unit number",
			}
		}
		seenUnits[in.Unit] = i

		unit := model.StackUnit{
			Unit:     in.Unit,
			Host:     in.Host,
			Capacity: in.Capacity,
			Method:   in.Method,
		}

		if in.Err != nil {
			unit.Error = in.Err.Error()
			util.WithHost(in.Host).Warnf("unit %d failed, contributing zero interfaces: %v", in.Unit, in.Err)
			st.Units = append(st.Units, unit)
			continue
		}

		for _, rec := range in.Records {
			parsed := ifname.Parse(rec.Name)
			if parsed == nil {
				util.Debugf("skipping unrecognized interface %q on unit %d", rec.Name, in.Unit)
				continue
			}

			if Excluded(parsed, in.Capacity) {
				util.WithUnit(in.Unit).Debugf("skipping uplink port %s (capacity %d)", rec.Name, in.Capacity)
				continue
			}

			rec.OriginalName = rec.Name
			rec.Name = parsed.Translate(in.Unit)

			if owner, clash := seenNames[rec.Name]; clash {
				return nil, &util.UnitConflictError{
					UnitA:   owner,
					UnitB:   in.Unit,
					Subject: "translated name " + rec.Name,
				}
			}
			seenNames[rec.Name] = in.Unit

			vlans := rec.ObservedVLANs()
			unit.VLANs.Union(vlans)
			st.VLANs.Union(vlans)

			if rec.EthTrunk > 0 {
				trunkGroups[rec.EthTrunk] = struct{}{}
			}

			unit.InterfaceCount++
			st.Interfaces = append(st.Interfaces, rec)
		}

		util.WithUnit(in.Unit).Infof("aggregated %d interfaces from %s", unit.InterfaceCount, in.Host)
		st.Units = append(st.Units, unit)
	}

	for g := range trunkGroups {
		st.EthTrunks = append(st.EthTrunks, g)
	}
	sort.Ints(st.EthTrunks)

	return st, nil
}
