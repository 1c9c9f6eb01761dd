package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stackshift-net/stackshift/pkg/cli"
	"github.com/stackshift-net/stackshift/pkg/stack"
	"github.com/stackshift-net/stackshift/pkg/transport"
	"github.com/stackshift-net/stackshift/pkg/util"
)

var (
	extractHost     string
	extractUser     string
	extractPassword string
	extractUnit     int
	extractCapacity int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract interface configuration from a single switch",
	Long: `Connects to one switch, reads its interface configuration, and prints
the translated records. Useful for verifying connectivity and parsing
before running a full stack collection.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractHost, "host", "", "switch address (required)")
	extractCmd.Flags().StringVarP(&extractUser, "user", "u", "admin", "login username")
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "login password (prompted when omitted)")
	extractCmd.Flags().IntVar(&extractUnit, "unit", 1, "target stack unit number")
	extractCmd.Flags().IntVar(&extractCapacity, "capacity", 24, "access port count of the switch")
	extractCmd.MarkFlagRequired("host")
}

func runExtract(cmd *cobra.Command, args []string) error {
	password, err := resolvePassword(extractPassword, extractHost)
	if err != nil {
		return err
	}

	spec := stack.UnitSpec{
		Host:     extractHost,
		Unit:     extractUnit,
		Capacity: extractCapacity,
		Username: extractUser,
		Password: password,
	}

	ctx := context.Background()
	inputs := stack.Collect(ctx, []stack.UnitSpec{spec}, dialSwitch, stack.CollectOptions{Concurrency: 1})

	in := inputs[0]
	if in.Err != nil {
		return fmt.Errorf("extracting from %s: %w", in.Host, in.Err)
	}

	st, err := stack.Aggregate(extractHost, inputs)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(st)
	}

	fmt.Printf("%s: %d interfaces via %s\n\n", extractHost, len(st.Interfaces), in.Method)
	t := cli.NewTable("PORT", "WAS", "MODE", "VLANS", "TRUNK", "STATE")
	for _, rec := range st.Interfaces {
		state := cli.Green("up")
		if rec.Shutdown {
			state = cli.Red("shutdown")
		}
		trunk := ""
		if rec.IsLAGMember() {
			trunk = "Eth-Trunk " + strconv.Itoa(rec.EthTrunk)
		}
		t.Row(rec.Name, rec.OriginalName, cli.Dash(string(rec.LinkMode)),
			cli.Dash(rec.ObservedVLANs().Summary()), cli.Dash(trunk), state)
	}
	t.Flush()
	fmt.Printf("\nVLANs observed: %s\n", cli.Dash(st.VLANs.Summary()))
	return nil
}

// dialSwitch adapts the transport client to the collector's Source
// contract, applying the configured timeouts.
func dialSwitch(ctx context.Context, host, username, password string) (stack.Source, error) {
	c, err := transport.Dial(ctx, host, username, password, transport.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// resolvePassword prompts interactively when no password was supplied via
// flags or inventory. Prompting goes to stderr so piped stdout stays clean.
func resolvePassword(password, host string) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", host)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(raw) == 0 {
		util.Warnf("empty password supplied for %s", host)
	}
	return string(raw), nil
}
