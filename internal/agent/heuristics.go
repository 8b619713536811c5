package agent

import (
	"regexp"
	"strings"
)

// planningKeywords mark an utterance as an actionable reconnaissance
// request rather than a conversational question.
var planningKeywords = []string{
	"scan",
	"reconnaissance",
	"recon",
	"pentest",
	"security test",
	"audit",
	"enumerate",
	"find vulnerabilities",
	"test for",
	"assess",
}

// knowledgePrefixes mark questions about concepts, which never trigger
// planning even when they contain an actionable-looking word.
var knowledgePrefixes = []string{
	"what is a ",
	"what is an ",
	"what are ",
	"explain ",
	"how does ",
	"define ",
	"why does ",
	"why is ",
}

// refreshKeywords ask for a fresh tool run instead of the remembered result.
var refreshKeywords = []string{
	"again",
	"refresh",
	"recheck",
	"re-check",
	"rerun",
	"re-run",
	"update",
}

// closingPhrases signal that a model turn is a final statement rather
// than an intermediate thought.
var closingPhrases = []string{
	"final analysis",
	"in conclusion",
	"to conclude",
	"to summarize",
	"conclusion:",
	"based on the above",
	"therefore",
	"so we can say",
}

// RequiresPlanning reports whether an utterance should go through the
// full plan-execute-analyze pipeline. Questions about concepts ("what is
// an IP address") stay conversational even though they mention scanning
// vocabulary; "what is my IP" remains actionable because it asks about
// this machine, not a concept.
func RequiresPlanning(utterance string) bool {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	for _, prefix := range knowledgePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	for _, kw := range planningKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// WantsRefresh reports whether the utterance asks for fresh data instead
// of a remembered tool result.
func WantsRefresh(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, kw := range refreshKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsClosingStatement reports whether a model turn reads like a final
// statement. This is a wording heuristic, isolated here so it can be
// replaced without touching the loop.
func IsClosingStatement(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range closingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var (
	ipPattern     = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?:/\d{1,2})?\b`)
	domainPattern = regexp.MustCompile(`\b[a-z0-9][a-z0-9-]*(?:\.[a-z0-9][a-z0-9-]*)+\b`)
)

// ExtractTarget pulls the first IP, CIDR, or domain name mentioned in an
// utterance. Returns "" when nothing target-like is present.
func ExtractTarget(utterance string) string {
	lower := strings.ToLower(utterance)
	if m := ipPattern.FindString(lower); m != "" {
		return m
	}
	return domainPattern.FindString(lower)
}
