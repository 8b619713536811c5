package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/memory"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

const investigatorSystemPrompt = `You are a reconnaissance assistant working
inside an authorized engagement. You may invoke tools by responding with
ONLY a JSON object:

{"tool": "<name>", "parameters": {...}, "rationale": "..."}

To answer without a tool, respond with:

{"tool": null, "answer": "..."}

Available tools:
%s

Rules:
- One tool per turn. Never invent tool names.
- Tool results from earlier in the conversation may be reused; only run
  a tool again when the user explicitly asks for fresh data.
- Only passive reconnaissance against authorized targets.`

const decomposePrompt = `Split the user request into independent atomic
requests. Respond with ONLY a JSON array of strings. A request that is
already atomic yields a single-element array.`

// Investigator coordinates a conversation: it decomposes utterances into
// intents, routes actionable intents through the planner pipeline, and
// answers the rest with a bounded reason-act loop.
type Investigator struct {
	gateway    llm.Gateway
	planner    *Planner
	researcher *Researcher
	analyst    *Analyst
	registry   *tool.Registry
	memory     *memory.Conversation
	sink       events.Sink
	logger     *slog.Logger

	maxSteps     int
	recentWindow int
}

// InvestigatorOption tunes the coordinator.
type InvestigatorOption func(*Investigator)

// WithMaxSteps bounds the reason-act loop.
func WithMaxSteps(n int) InvestigatorOption {
	return func(inv *Investigator) {
		if n > 0 {
			inv.maxSteps = n
		}
	}
}

// WithRecentWindow bounds how much history is replayed into prompts.
func WithRecentWindow(n int) InvestigatorOption {
	return func(inv *Investigator) {
		if n > 0 {
			inv.recentWindow = n
		}
	}
}

// WithEventSink routes progress events to sink.
func WithEventSink(sink events.Sink) InvestigatorOption {
	return func(inv *Investigator) {
		if sink != nil {
			inv.sink = sink
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) InvestigatorOption {
	return func(inv *Investigator) {
		if logger != nil {
			inv.logger = logger
		}
	}
}

// NewInvestigator wires the coordinator. The conversation is shared by
// reference; callers keep their handle to inspect history.
func NewInvestigator(gateway llm.Gateway, planner *Planner, researcher *Researcher, analyst *Analyst, registry *tool.Registry, conv *memory.Conversation, opts ...InvestigatorOption) *Investigator {
	inv := &Investigator{
		gateway:      gateway,
		planner:      planner,
		researcher:   researcher,
		analyst:      analyst,
		registry:     registry,
		memory:       conv,
		sink:         events.Discard,
		logger:       slog.Default(),
		maxSteps:     5,
		recentWindow: 10,
	}
	for _, opt := range opts {
		opt(inv)
	}
	inv.logger = inv.logger.With("session", conv.Session())
	return inv
}

// HandleUtterance processes one user turn end to end and returns the
// combined answer.
func (inv *Investigator) HandleUtterance(ctx context.Context, utterance string) (string, error) {
	inv.memory.AddUser(utterance)

	intents := inv.decomposeIntents(ctx, utterance)
	inv.logger.Info("utterance decomposed", "intents", len(intents))

	answers := make([]string, 0, len(intents))
	for _, intent := range intents {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var answer string
		if RequiresPlanning(intent) {
			answer = inv.runPipeline(ctx, intent)
		} else {
			answer = inv.reasonActLoop(ctx, intent)
		}
		answers = append(answers, answer)
	}

	final := strings.Join(answers, "\n\n")
	inv.memory.AddAssistant(final)
	inv.sink.Emit(events.New(events.EventAnswer, final))
	return final, nil
}

// decomposeIntents asks the model to split the utterance. Any failure
// falls back to treating the whole utterance as one intent.
func (inv *Investigator) decomposeIntents(ctx context.Context, utterance string) []string {
	response, err := inv.gateway.Generate(ctx,
		[]llm.Message{
			llm.NewSystemMessage(decomposePrompt),
			llm.NewUserMessage(utterance),
		},
		llm.GenerateOptions{Temperature: 0},
	)
	if err != nil {
		return []string{utterance}
	}

	intents, err := llm.ExtractJSONAs[[]string](llm.StripReasoning(response))
	if err != nil || len(intents) == 0 {
		return []string{utterance}
	}
	cleaned := intents[:0]
	for _, intent := range intents {
		if s := strings.TrimSpace(intent); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return []string{utterance}
	}
	return cleaned
}

// runPipeline handles an actionable intent: plan, execute, analyze.
func (inv *Investigator) runPipeline(ctx context.Context, intent string) string {
	target := ExtractTarget(intent)
	if target == "" {
		return "I need a concrete target (domain, IP, or network) to plan reconnaissance. Please name one."
	}

	inv.sink.Emit(events.New(events.EventThinking, "planning reconnaissance for "+target))

	authorized := inv.authorizedTools()
	plan := inv.planner.GeneratePlan(ctx, intent, target, authorized, inv.registry.Descriptions())

	observations := inv.researcher.ExecutePlan(ctx, plan)
	for i, obs := range observations {
		if i < len(plan.Steps) {
			inv.memory.Add(llm.NewAssistantMessage("[" + plan.Steps[i].Tool + "] " + obs))
		}
	}

	analysis, err := inv.analyst.Analyze(ctx, intent, observations)
	if err != nil {
		inv.logger.Warn("analysis failed", "error", err)
		return "Reconnaissance ran but the analysis step failed:\n\n" + strings.Join(observations, "\n\n")
	}
	return analysis
}

// reasonActLoop answers a conversational intent, invoking at most
// maxSteps tools. Each tool runs at most once per loop; a repeated
// selection ends the loop and forces a final answer.
func (inv *Investigator) reasonActLoop(ctx context.Context, intent string) string {
	executed := make(map[string]bool)
	var observations []string

	for step := 0; step < inv.maxSteps; step++ {
		response, err := inv.gateway.Generate(ctx, inv.loopMessages(intent, observations), llm.GenerateOptions{Temperature: 0.2})
		if err != nil {
			inv.logger.Warn("model turn failed", "error", err)
			return inv.finalizeFromObservations(ctx, intent, observations,
				"I could not reach the language model to finish this request.")
		}

		decision := DecodeDecision(response)
		switch decision.Kind {
		case DecisionFailure:
			return inv.finalizeFromObservations(ctx, intent, observations,
				"I could not produce a usable answer for this request.")

		case DecisionAnswer:
			// structured answers are always final; mid-loop prose after
			// tool use is only final when it reads like a closing statement
			if !decision.Structured && len(executed) > 0 &&
				!IsClosingStatement(decision.Answer) && step < inv.maxSteps-1 {
				observations = append(observations, "Assistant note: "+decision.Answer)
				continue
			}
			return decision.Answer

		case DecisionAction:
			toolName := decision.Action.Tool
			if !inv.researcher.KnownTool(toolName) {
				inv.logger.Warn("model invented a tool, demoting to answer", "tool", toolName)
				if decision.Action.Rationale != "" {
					return decision.Action.Rationale
				}
				return decision.Raw
			}
			if executed[toolName] {
				inv.logger.Info("repeated tool selection, ending loop", "tool", toolName)
				return inv.finalizeFromObservations(ctx, intent, observations,
					"I gathered what I could for this request.")
			}

			observation := inv.observeTool(ctx, decision.Action, intent)
			executed[toolName] = true
			observations = append(observations, fmt.Sprintf("[%s] %s", toolName, observation))
		}
	}

	return inv.finalizeFromObservations(ctx, intent, observations,
		"I reached the step limit for this request.")
}

// observeTool dispatches an action, or serves the result from memory
// when the same tool already ran and the user did not ask for fresh data.
func (inv *Investigator) observeTool(ctx context.Context, action Action, intent string) string {
	if !WantsRefresh(intent) {
		if remembered, ok := inv.memory.FindToolResult(action.Tool); ok {
			inv.logger.Info("serving tool result from memory", "tool", action.Tool)
			return strings.TrimSpace(strings.TrimPrefix(remembered.Content, "["+action.Tool+"]"))
		}
	}

	observation := inv.researcher.ExecuteStep(ctx, action)
	inv.memory.Add(llm.NewAssistantMessage("[" + action.Tool + "] " + observation))
	return observation
}

// finalizeFromObservations asks the model to synthesize a final answer
// from what was gathered, falling back to the raw observations.
func (inv *Investigator) finalizeFromObservations(ctx context.Context, intent string, observations []string, fallback string) string {
	if len(observations) == 0 {
		return fallback
	}

	response, err := inv.gateway.Generate(ctx,
		[]llm.Message{
			llm.NewSystemMessage("Write a concise final answer for the user from the gathered tool output. Respond in plain text."),
			llm.NewUserMessage(fmt.Sprintf("Request: %s\n\nGathered output:\n%s", intent, strings.Join(observations, "\n\n"))),
		},
		llm.GenerateOptions{Temperature: 0.3},
	)
	if err != nil {
		return strings.Join(observations, "\n\n")
	}
	if answer := llm.StripReasoning(response); answer != "" {
		return answer
	}
	return strings.Join(observations, "\n\n")
}

// loopMessages assembles the prompt for one reasoning turn: the system
// prompt with the tool roster, the recent conversation window, the
// intent, and the observations collected so far in this loop.
func (inv *Investigator) loopMessages(intent string, observations []string) []llm.Message {
	roster := inv.registry.Descriptions()
	for op := range ManagementOps {
		roster = append(roster, op+": engagement management operation")
	}

	messages := []llm.Message{
		llm.NewSystemMessage(fmt.Sprintf(investigatorSystemPrompt, strings.Join(roster, "\n"))),
	}
	messages = append(messages, inv.memory.Recent(inv.recentWindow)...)
	messages = append(messages, llm.NewUserMessage(intent))
	if len(observations) > 0 {
		messages = append(messages, llm.NewAssistantMessage("Observations so far:\n"+strings.Join(observations, "\n\n")))
	}
	return messages
}

// authorizedTools is the dispatchable roster: registered tools plus the
// management operations.
func (inv *Investigator) authorizedTools() map[string]bool {
	authorized := make(map[string]bool)
	for _, name := range inv.registry.Names() {
		authorized[name] = true
	}
	for op := range ManagementOps {
		authorized[op] = true
	}
	return authorized
}
