package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackshift-net/stackshift/pkg/cli"
	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/render"
	"github.com/stackshift-net/stackshift/pkg/util"
)

var (
	genStack      string
	genSysname    string
	genIP         string
	genGateway    string
	genPassword   string
	genLACP       bool
	genSimple     bool
	genTrunkVLANs string
	genOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate replacement-stack configuration from a saved session",
	Long: `Loads a collected stack session and renders configuration for the
replacement stack.

The default complete mode produces a full deployment script: sysname,
management VLAN and route, admin account, Eth-Trunk definitions, and
every migrated interface. --simple renders only the interface blocks,
for pasting into an already-provisioned switch.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genStack, "stack", "", "saved stack session name (required)")
	generateCmd.Flags().StringVar(&genSysname, "sysname", "", "system name for the new stack")
	generateCmd.Flags().StringVar(&genIP, "ip", "", "management IP address")
	generateCmd.Flags().StringVar(&genGateway, "gateway", "", "default gateway")
	generateCmd.Flags().StringVar(&genPassword, "admin-password", "", "admin account password (prompted when omitted)")
	generateCmd.Flags().BoolVar(&genLACP, "lacp", false, "use LACP mode on Eth-Trunk interfaces")
	generateCmd.Flags().StringVar(&genTrunkVLANs, "trunk-vlans", "", "restrict Eth-Trunk allow-pass VLANs, range notation (e.g. 10-20,30); default full range")
	generateCmd.Flags().BoolVar(&genSimple, "simple", false, "render interface blocks only")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default derived from sysname, or stdout with --simple)")
	generateCmd.MarkFlagRequired("stack")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	st, err := sessionStore().Load(context.Background(), genStack)
	if err != nil {
		return err
	}

	r := render.New()

	if genSimple {
		out := r.Simple(st.Interfaces)
		return writeConfig(out, genOutput, false)
	}

	password := genPassword
	if password == "" {
		password, err = resolvePassword("", "admin@"+genSysname)
		if err != nil {
			return err
		}
	}

	opts := render.Options{
		Sysname:       genSysname,
		ManagementIP:  genIP,
		Gateway:       genGateway,
		AdminPassword: password,
		LACP:          genLACP,
		Units:         st.Units,
	}
	opts.TrunkVLANs, err = parseTrunkVLANs(genTrunkVLANs)
	if err != nil {
		return err
	}
	out, stats, err := r.Complete(st.Interfaces, st.EthTrunks, opts)
	if err != nil {
		return err
	}

	dest := genOutput
	if dest == "" {
		dest = render.SuggestedFilename(genSysname)
	}
	if err := writeConfig(out, dest, true); err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(struct {
			File  string       `json:"file"`
			Stats render.Stats `json:"stats"`
		}{dest, stats})
	}
	fmt.Printf("%s %s\n", cli.Green("wrote"), dest)
	fmt.Printf("  %d interfaces (%d trunk, %d access), %d Eth-Trunks\n",
		stats.Interfaces, stats.TrunkPorts, stats.AccessPorts, stats.EthTrunks)
	return nil
}

// parseTrunkVLANs expands flag range notation into a VLAN set. An empty
// flag keeps the renderer's full-range default.
func parseTrunkVLANs(spec string) (model.VLANSet, error) {
	if spec == "" {
		return model.VLANSet{}, nil
	}
	ids, err := util.ExpandVLANRange(spec)
	if err != nil {
		return model.VLANSet{}, fmt.Errorf("parsing --trunk-vlans: %w", err)
	}
	return model.NewVLANSet(ids...), nil
}

// writeConfig writes to the named file, or stdout when the name is empty
// or "-".
func writeConfig(out, dest string, announce bool) error {
	if dest == "" || dest == "-" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if announce {
		return nil
	}
	fmt.Printf("%s %s\n", cli.Green("wrote"), dest)
	return nil
}
