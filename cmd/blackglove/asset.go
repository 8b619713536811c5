package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/asset"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage the assets in engagement scope",
}

var assetAddCmd = &cobra.Command{
	Use:   "add <name> <type> <value>",
	Short: "Register an asset (type: domain, ip, network, url)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openAssets(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		added, err := store.Add(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s): %s\n", added.Name, added.Type, added.Value)
		return nil
	},
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openAssets(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		assets, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(assets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No assets registered.")
			return nil
		}
		printAssets(cmd, assets)
		return nil
	},
}

var assetRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an asset from scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openAssets(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

func printAssets(cmd *cobra.Command, assets []asset.Asset) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-10s %s\n", "NAME", "TYPE", "VALUE")
	fmt.Fprintln(out, strings.Repeat("-", 50))
	for _, a := range assets {
		fmt.Fprintf(out, "%-20s %-10s %s\n", a.Name, a.Type, a.Value)
	}
}

func init() {
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetRemoveCmd)
}
