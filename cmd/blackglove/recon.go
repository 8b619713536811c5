package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
)

var reconGoal string

var reconCmd = &cobra.Command{
	Use:   "recon <asset-name>",
	Short: "Run the reconnaissance pipeline against a registered asset",
	Long: `Recon plans a passive reconnaissance workflow for the named asset,
executes the steps under the policy gate, and prints the analysis.
The asset must already be registered with "blackglove asset add".`,
	Args: cobra.ExactArgs(1),
	RunE: runRecon,
}

func runRecon(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sink := events.Func(func(e events.Event) {
		if line := renderEvent(e); line != "" {
			fmt.Fprintln(out, line)
		}
	})

	sess, err := newSession(ctx, cfg, sink)
	if err != nil {
		return err
	}
	defer sess.Close()

	target, err := sess.assets.Find(ctx, args[0])
	if err != nil {
		return err
	}

	goal := reconGoal
	if goal == "" {
		goal = "passive reconnaissance of " + target.Value
	}

	authorized := make(map[string]bool)
	for _, name := range sess.registry.Names() {
		authorized[name] = true
	}

	plan := sess.planner.GeneratePlan(ctx, goal, target.Value, authorized, sess.registry.Descriptions())
	if plan.Fallback {
		fmt.Fprintln(out, thinkingStyle.Render("planner unavailable, running fallback workflow"))
	}
	fmt.Fprintf(out, "Plan: %d step(s) for %s\n\n", len(plan.Steps), target.Value)

	observations := sess.researcher.ExecutePlan(ctx, plan)
	analysis, err := sess.analyst.Analyze(ctx, goal, observations)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("analysis failed: "+err.Error()))
		for _, obs := range observations {
			fmt.Fprintln(out, obs)
		}
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, answerStyle.Render(analysis))
	return nil
}

func init() {
	reconCmd.Flags().StringVar(&reconGoal, "goal", "", "override the reconnaissance goal")
}
