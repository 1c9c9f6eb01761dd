package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackshift-net/stackshift/pkg/cli"
	"github.com/stackshift-net/stackshift/pkg/layer3"
	"github.com/stackshift-net/stackshift/pkg/render"
	"github.com/stackshift-net/stackshift/pkg/util"
)

var (
	l3File       string
	l3Sysname    string
	l3IP         string
	l3Gateway    string
	l3Password   string
	l3LACP       bool
	l3TrunkVLANs string
	l3Output     string
	l3SkipRows   int
)

var layer3Cmd = &cobra.Command{
	Use:   "layer3",
	Short: "Generate configuration from a port-mapping CSV",
	Long: `Builds replacement-stack configuration from an offline port-mapping
sheet instead of live devices. The CSV columns are, in order:

  old port, new port, description, eth-trunk, link type, config 1, config 2

Only rows whose new-port cell starts with "interface" are imported;
anything else is treated as annotation and skipped.`,
	RunE: runLayer3,
}

func init() {
	layer3Cmd.Flags().StringVarP(&l3File, "file", "f", "", "mapping CSV file (required)")
	layer3Cmd.Flags().StringVar(&l3Sysname, "sysname", "", "system name for the new stack")
	layer3Cmd.Flags().StringVar(&l3IP, "ip", "", "management IP address")
	layer3Cmd.Flags().StringVar(&l3Gateway, "gateway", "", "default gateway")
	layer3Cmd.Flags().StringVar(&l3Password, "admin-password", "", "admin account password (prompted when omitted)")
	layer3Cmd.Flags().BoolVar(&l3LACP, "lacp", false, "use LACP mode on Eth-Trunk interfaces")
	layer3Cmd.Flags().StringVar(&l3TrunkVLANs, "trunk-vlans", "", "restrict Eth-Trunk allow-pass VLANs, range notation (e.g. 10-20,30); default full range")
	layer3Cmd.Flags().StringVarP(&l3Output, "output", "o", "", "output file (default derived from sysname)")
	layer3Cmd.Flags().IntVar(&l3SkipRows, "skip-rows", 1, "header rows to skip")
	layer3Cmd.MarkFlagRequired("file")
}

func runLayer3(cmd *cobra.Command, args []string) error {
	rows, err := readMappingCSV(l3File, l3SkipRows)
	if err != nil {
		return err
	}
	util.Infof("read %d mapping rows from %s", len(rows), l3File)

	result := layer3.Import(rows)
	if len(result.Records) == 0 {
		return fmt.Errorf("no interface rows found in %s", l3File)
	}

	password := l3Password
	if password == "" {
		password, err = resolvePassword("", "admin@"+l3Sysname)
		if err != nil {
			return err
		}
	}

	trunkVLANs, err := parseTrunkVLANs(l3TrunkVLANs)
	if err != nil {
		return err
	}

	r := render.New()
	out, stats, err := r.Complete(result.Records, result.EthTrunks, render.Options{
		Sysname:       l3Sysname,
		ManagementIP:  l3IP,
		Gateway:       l3Gateway,
		AdminPassword: password,
		LACP:          l3LACP,
		TrunkVLANs:    trunkVLANs,
	})
	if err != nil {
		return err
	}

	dest := l3Output
	if dest == "" {
		dest = render.SuggestedFilename(l3Sysname)
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

// readMappingCSV reads the fixed seven-column layout, tolerating short
// rows and extra trailing columns.
func readMappingCSV(path string, skip int) ([]layer3.MappingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mapping file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var rows []layer3.MappingRow
	for n := 0; ; n++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if n < skip {
			continue
		}
		rows = append(rows, layer3.MappingRow{
			OldPort:     cell(record, 0),
			NewPort:     cell(record, 1),
			Description: cell(record, 2),
			EthTrunk:    cell(record, 3),
			LinkType:    cell(record, 4),
			Config1:     cell(record, 5),
			Config2:     cell(record, 6),
		})
	}
	return rows, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
