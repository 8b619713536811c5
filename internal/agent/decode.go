package agent

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
)

// DecisionKind tags the outcome of decoding a model turn.
type DecisionKind int

const (
	// DecisionAction means the model asked for a tool invocation.
	DecisionAction DecisionKind = iota
	// DecisionAnswer means the model answered in plain text.
	DecisionAnswer
	// DecisionFailure means no decision could be recovered from the turn.
	DecisionFailure
)

// Decision is the decoded outcome of one model turn. Exactly one of
// Action or Answer is meaningful depending on Kind; Raw always carries
// the cleaned response for logging.
type Decision struct {
	Kind   DecisionKind
	Action Action
	Answer string
	Raw    string
	// Structured is true when the decision came from a parsed payload
	// rather than free prose. A structured answer is always final; prose
	// mid-loop may be intermediate commentary.
	Structured bool
}

// Alternate tool-invocation conventions some models fall back to when
// they ignore the JSON instruction.
var (
	toolRequestPattern = regexp.MustCompile(`(?s)\[TOOL_REQUEST\](.*?)\[END_TOOL_REQUEST\]`)
	toolCallPattern    = regexp.MustCompile(`(?s)<tool_call>(.*?)</tool_call>`)
)

// rawDecision mirrors the JSON shape the models are asked to produce.
type rawDecision struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Arguments  map[string]any `json:"arguments"`
	Name       string         `json:"name"`
	Rationale  string         `json:"rationale"`
	Answer     string         `json:"answer"`
}

// DecodeDecision recovers a decision from an untrusted model turn. The
// layers are tried in order: reasoning markers are stripped, then fenced
// or bracketed JSON, then the alternate tool-invocation token styles.
// A turn with readable text but no structure decodes as an answer; only
// an empty or structurally broken turn is a failure.
func DecodeDecision(response string) Decision {
	cleaned := llm.StripReasoning(response)
	if cleaned == "" {
		return Decision{Kind: DecisionFailure, Raw: response}
	}

	if raw, err := llm.ExtractJSONAs[rawDecision](cleaned); err == nil {
		return fromRawDecision(raw, cleaned)
	}

	for _, pattern := range []*regexp.Regexp{toolRequestPattern, toolCallPattern} {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			var raw rawDecision
			if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &raw); err == nil {
				return fromRawDecision(raw, cleaned)
			}
			return Decision{Kind: DecisionFailure, Raw: cleaned}
		}
	}

	return Decision{Kind: DecisionAnswer, Answer: cleaned, Raw: cleaned}
}

func fromRawDecision(raw rawDecision, cleaned string) Decision {
	tool := raw.Tool
	if tool == "" {
		tool = raw.Name
	}
	params := raw.Parameters
	if params == nil {
		params = raw.Arguments
	}
	if params == nil {
		params = map[string]any{}
	}

	if IsNoTool(tool) {
		answer := raw.Answer
		if answer == "" {
			answer = raw.Rationale
		}
		if answer == "" {
			answer = cleaned
		}
		return Decision{Kind: DecisionAnswer, Answer: answer, Raw: cleaned, Structured: true}
	}

	return Decision{
		Kind: DecisionAction,
		Action: Action{
			Tool:       strings.TrimSpace(tool),
			Parameters: params,
			Rationale:  raw.Rationale,
		},
		Raw:        cleaned,
		Structured: true,
	}
}
