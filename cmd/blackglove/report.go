package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/report"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the engagement report",
	Long: `Report renders the current engagement state: registered assets and
recorded policy violations. Findings are collected per session; use
"generate_report" inside chat for a report that includes them.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openAssets(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	assets, err := store.List(ctx)
	if err != nil {
		return err
	}

	rep := report.NewBuilder().Build(assets, nil, nil)
	if reportFormat == "json" {
		out, err := rep.RenderJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), rep.RenderMarkdown())
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown or json")
}
