package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stackshift-net/stackshift/pkg/cli"
	"github.com/stackshift-net/stackshift/pkg/inventory"
	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/stack"
	"github.com/stackshift-net/stackshift/pkg/util"
)

var stackInventoryFile string

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Collect and manage stack sessions",
}

var stackProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Collect interface configuration from every switch in an inventory",
	Long: `Reads a YAML inventory, connects to each listed switch in parallel,
translates and aggregates the interfaces into one logical stack, and
saves the result as a named session for later generation.

Switches that cannot be reached are recorded as failed units; the rest
of the stack is still saved.`,
	RunE: runStackProcess,
}

var stackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stack sessions",
	RunE:  runStackList,
}

var stackShowCmd = &cobra.Command{
	Use:   "show <stack>",
	Short: "Show a saved stack session",
	Args:  cobra.ExactArgs(1),
	RunE:  runStackShow,
}

var stackDeleteCmd = &cobra.Command{
	Use:   "delete <stack>",
	Short: "Delete a saved stack session",
	Args:  cobra.ExactArgs(1),
	RunE:  runStackDelete,
}

func init() {
	stackProcessCmd.Flags().StringVarP(&stackInventoryFile, "file", "f", "", "inventory YAML file (required)")
	stackProcessCmd.MarkFlagRequired("file")

	stackCmd.AddCommand(stackProcessCmd)
	stackCmd.AddCommand(stackListCmd)
	stackCmd.AddCommand(stackShowCmd)
	stackCmd.AddCommand(stackDeleteCmd)
}

func runStackProcess(cmd *cobra.Command, args []string) error {
	inv, err := inventory.Load(stackInventoryFile)
	if err != nil {
		return err
	}

	specs := make([]stack.UnitSpec, 0, len(inv.Switches))
	for _, sw := range inv.Switches {
		user, password := inv.CredentialsFor(sw)
		if password == "" {
			password, err = resolvePassword("", sw.Host)
			if err != nil {
				return err
			}
		}
		specs = append(specs, stack.UnitSpec{
			Host:     sw.Host,
			Unit:     sw.Unit,
			Capacity: sw.Capacity,
			Username: user,
			Password: password,
		})
	}

	ctx := context.Background()
	util.Infof("collecting %d switches for stack %s", len(specs), inv.StackName)
	inputs := stack.Collect(ctx, specs, dialSwitch, stack.CollectOptions{Concurrency: cfg.Concurrency})

	st, err := stack.Aggregate(inv.StackName, inputs)
	if err != nil {
		return err
	}

	store := sessionStore()
	if err := store.Save(ctx, st); err != nil {
		return fmt.Errorf("saving stack session: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(st)
	}

	printStackSummary(st)
	if failed := st.FailedUnits(); len(failed) > 0 {
		fmt.Printf("\n%s %d of %d units failed; re-run after fixing, or generate with what was collected.\n",
			cli.Yellow("warning:"), len(failed), len(st.Units))
	}
	fmt.Printf("\nSession saved as %q. Next:\n  stackshift generate --stack %s --sysname <name> --ip <addr> --gateway <addr>\n",
		st.Name, st.Name)
	return nil
}

func runStackList(cmd *cobra.Command, args []string) error {
	names, err := sessionStore().List(context.Background())
	if err != nil {
		return err
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(names)
	}
	if len(names) == 0 {
		fmt.Println("no saved stack sessions")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runStackShow(cmd *cobra.Command, args []string) error {
	st, err := sessionStore().Load(context.Background(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(st)
	}
	printStackSummary(st)
	return nil
}

func runStackDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := sessionStore().Delete(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("deleted stack session %q\n", name)
	return nil
}

func printStackSummary(st *model.Stack) {
	fmt.Printf("Stack %s: %d interfaces, %d units\n\n", cli.Bold(st.Name), len(st.Interfaces), len(st.Units))

	t := cli.NewTable("UNIT", "HOST", "CAPACITY", "METHOD", "INTERFACES", "VLANS", "STATUS")
	for _, u := range st.Units {
		status := cli.Green("ok")
		if u.Failed() {
			status = cli.Red(u.Error)
		}
		t.Row(strconv.Itoa(u.Unit), u.Host, strconv.Itoa(u.Capacity), cli.Dash(u.Method),
			strconv.Itoa(u.InterfaceCount), cli.Dash(u.VLANs.Summary()), status)
	}
	t.Flush()

	fmt.Printf("\nVLANs: %s\n", cli.Dash(st.VLANs.Summary()))
	if len(st.EthTrunks) > 0 {
		fmt.Printf("Eth-Trunks: %d referenced\n", len(st.EthTrunks))
	}
}
