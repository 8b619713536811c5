package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session with the agent",
	Long: `Chat opens a line-based conversation with the agent. Actionable
requests ("scan example.com") run the plan-execute-analyze pipeline;
everything else is answered conversationally, with tool calls as needed.

Type "exit" or press Ctrl-D to leave.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sink := events.Func(func(e events.Event) {
		if e.Type == events.EventAnswer {
			return
		}
		if line := renderEvent(e); line != "" {
			fmt.Fprintln(out, line)
		}
	})

	sess, err := newSession(ctx, cfg, sink)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Fprintln(out, "Black Glove reconnaissance agent. Registered tools:")
	for _, line := range sess.registry.Descriptions() {
		fmt.Fprintln(out, "  "+line)
	}
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if isInteractive() {
			fmt.Fprint(out, promptStyle.Render("you> "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if ctx.Err() != nil {
			break
		}

		answer, err := sess.investigator.HandleUtterance(ctx, line)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
			continue
		}
		fmt.Fprintln(out, answerStyle.Render(answer))
		fmt.Fprintln(out)
	}
	return scanner.Err()
}
