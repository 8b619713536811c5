package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// fencePattern matches markdown code fences with an optional language tag.
	fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n?(.+?)```")

	// reasoningPattern matches chain-of-thought markers some local models
	// emit before their actual answer.
	reasoningPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// StripReasoning removes <think>...</think> blocks from model output.
// An unterminated marker drops everything from the marker onward.
func StripReasoning(response string) string {
	cleaned := reasoningPattern.ReplaceAllString(response, "")
	if idx := strings.Index(cleaned, "<think>"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}

// ExtractJSON pulls a JSON object or array out of model output that may be
// wrapped in markdown or surrounded by prose. Fenced blocks are tried
// first, then a raw bracket scan over the whole response.
func ExtractJSON(response string) (string, error) {
	if s, ok := extractFenced(response); ok {
		return s, nil
	}
	if s, ok := extractBracketed(response); ok {
		return s, nil
	}
	return "", NewParseError("no valid JSON found in response", nil)
}

// ExtractJSONAs extracts JSON and unmarshals it into T.
func ExtractJSONAs[T any](response string) (T, error) {
	var result T
	s, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		return result, NewParseError("unmarshaling extracted JSON", err)
	}
	return result, nil
}

func extractFenced(response string) (string, bool) {
	for _, match := range fencePattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
			continue
		}
		if json.Valid([]byte(content)) {
			return content, true
		}
	}
	return "", false
}

func extractBracketed(response string) (string, bool) {
	start := -1
	var closer byte
	for i := 0; i < len(response); i++ {
		if response[i] == '{' {
			start, closer = i, '}'
			break
		}
		if response[i] == '[' {
			start, closer = i, ']'
			break
		}
	}
	if start < 0 {
		return "", false
	}
	candidate := scanBalanced(response[start:], closer)
	if candidate == "" || !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}

// scanBalanced returns the prefix of s up to the bracket matching s[0],
// tracking string literals and escapes so braces inside values do not
// confuse the depth count.
func scanBalanced(s string, closer byte) string {
	opener := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == opener:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
