package stack

import (
	"context"
	"sync"

	"github.com/stackshift-net/stackshift/pkg/confparse"
	"github.com/stackshift-net/stackshift/pkg/ifname"
	"github.com/stackshift-net/stackshift/pkg/util"
)

// Source yields raw command output for one switch. The transport package
// provides the real implementation; tests substitute canned output.
type Source interface {
	InterfaceBrief() (string, error)
	InterfaceConfig(name string) (string, error)
	Method() string
	Close() error
}

// DialFunc opens a Source for a switch, reporting connection failure.
type DialFunc func(ctx context.Context, host, username, password string) (Source, error)

// UnitSpec identifies one switch to collect from.
type UnitSpec struct {
	Host     string
	Unit     int
	Capacity int
	Username string
	Password string
}

// CollectOptions tunes the collection run.
type CollectOptions struct {
	// Concurrency bounds the number of switches fetched in parallel.
	// Kept small so devices are not overloaded. Default 4.
	Concurrency int
}

// Collect fetches and parses interface configuration from every unit,
// fanning the per-switch work out to a bounded pool of workers. Results
// come back in spec order regardless of completion order. Per-unit
// failures are captured in the corresponding UnitInput, never returned
// as an error: partial stacks are expected.
func Collect(ctx context.Context, specs []UnitSpec, dial DialFunc, opts CollectOptions) []UnitInput {
	workers := opts.Concurrency
	if workers <= 0 {
		workers = 4
	}
	if workers > len(specs) {
		workers = len(specs)
	}

	inputs := make([]UnitInput, len(specs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				inputs[i] = collectUnit(ctx, specs[i], dial)
			}
		}()
	}

	for i := range specs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return inputs
}

// collectUnit processes one switch: connect, list interfaces, and fetch
// the configuration block for every non-uplink port. Uplinks are filtered
// before fetching so excluded ports cost no device round trips.
func collectUnit(ctx context.Context, spec UnitSpec, dial DialFunc) UnitInput {
	in := UnitInput{Host: spec.Host, Unit: spec.Unit, Capacity: spec.Capacity}
	log := util.WithHost(spec.Host)

	src, err := dial(ctx, spec.Host, spec.Username, spec.Password)
	if err != nil {
		log.Errorf("connect failed: %v", err)
		in.Err = err
		return in
	}
	defer src.Close()
	in.Method = src.Method()

	brief, err := src.InterfaceBrief()
	if err != nil {
		log.Errorf("interface brief failed: %v", err)
		in.Err = err
		return in
	}

	for _, entry := range confparse.ParseInterfaceBrief(brief) {
		parsed := ifname.Parse(entry.Name)
		if parsed == nil {
			continue
		}
		if Excluded(parsed, spec.Capacity) {
			log.Debugf("skipping uplink port %s (port %d > %d-port capacity)", entry.Name, parsed.Port, spec.Capacity)
			continue
		}

		blob, err := src.InterfaceConfig(entry.Name)
		if err != nil {
			// One unreadable interface does not fail the unit.
			log.Warnf("failed to get config for %s: %v", entry.Name, err)
			continue
		}

		rec := confparse.ParseInterfaceConfig(blob)
		if rec.Name == "" {
			log.Warnf("unparseable config block for %s, skipping", entry.Name)
			continue
		}
		in.Records = append(in.Records, rec)
	}

	log.Infof("collected %d interface configs via %s", len(in.Records), in.Method)
	return in
}
