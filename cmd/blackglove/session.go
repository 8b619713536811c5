package main

import (
	"context"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/agent"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/asset"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm/providers"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/memory"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/policy"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/report"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool/builtins"
)

// session bundles the wired components of one agent run.
type session struct {
	investigator *agent.Investigator
	researcher   *agent.Researcher
	planner      *agent.Planner
	analyst      *agent.Analyst
	registry     *tool.Registry
	gate         *policy.Gate
	assets       *asset.Store
	reports      *report.Builder
	conversation *memory.Conversation
}

// newSession wires the full agent stack from the loaded configuration.
// Registered asset values extend the policy allowlist so the operator's
// scope declaration lives in one place; the validator sorts IP, network,
// and URL values into the matching scope list.
func newSession(ctx context.Context, cfg *config.Config, sink events.Sink) (*session, error) {
	store, err := asset.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	policyCfg := cfg.Policy
	values, err := store.Values(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	policyCfg.AllowedDomains = append(policyCfg.AllowedDomains, values...)

	gate, err := policy.NewGate(policyCfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	registry := tool.NewRegistry()
	if err := builtins.RegisterAll(registry, cfg.Tools); err != nil {
		store.Close()
		return nil, err
	}

	gateway, err := providers.New(cfg.LLM)
	if err != nil {
		store.Close()
		return nil, err
	}

	reports := report.NewBuilder()
	researcher := agent.NewResearcher(registry, gate, store, reports, sink, logger, cfg.Agent.MaxOutputChars)
	planner := agent.NewPlanner(gateway, logger)
	analyst := agent.NewAnalyst(gateway, reports, logger)
	researcher.SetNarrator(analyst)
	conversation := memory.NewConversation(cfg.Memory.MaxMessages)

	investigator := agent.NewInvestigator(gateway, planner, researcher, analyst, registry, conversation,
		agent.WithMaxSteps(cfg.Agent.MaxSteps),
		agent.WithRecentWindow(cfg.Memory.RecentWindow),
		agent.WithEventSink(sink),
		agent.WithLogger(logger),
	)

	return &session{
		investigator: investigator,
		researcher:   researcher,
		planner:      planner,
		analyst:      analyst,
		registry:     registry,
		gate:         gate,
		assets:       store,
		reports:      reports,
		conversation: conversation,
	}, nil
}

func (s *session) Close() error {
	return s.assets.Close()
}

// openAssets opens only the asset store, for commands that do not need
// the model stack.
func openAssets(ctx context.Context, cfg *config.Config) (*asset.Store, error) {
	return asset.Open(ctx, cfg.DatabasePath())
}
