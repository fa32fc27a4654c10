package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeJSON parses a model completion into T. Code fences and leading prose
// are stripped first; if plain unmarshalling fails the payload is run
// through jsonrepair and retried, since models routinely emit single quotes,
// trailing commas, or unquoted keys.
func DecodeJSON[T any](content string) (T, error) {
	var result T

	payload := extractJSONPayload(content)
	if payload == "" {
		return result, fmt.Errorf("completion contains no JSON payload")
	}

	if err := json.Unmarshal([]byte(payload), &result); err == nil {
		return result, nil
	}

	repaired, err := jsonrepair.JSONRepair(payload)
	if err != nil {
		return result, fmt.Errorf("repairing completion JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("decoding repaired completion JSON: %w", err)
	}
	return result, nil
}

// extractJSONPayload strips markdown code fences and any prose around the
// outermost JSON object or array.
func extractJSONPayload(content string) string {
	content = strings.TrimSpace(content)

	if i := strings.Index(content, "```"); i >= 0 {
		rest := content[i+3:]
		// Skip a language tag like "json" on the fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		content = strings.TrimSpace(rest)
	}

	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return ""
	}
	opener := content[start]
	closer := byte('}')
	if opener == '[' {
		closer = ']'
	}
	if end := strings.LastIndexByte(content, closer); end > start {
		return content[start : end+1]
	}
	// Truncated output: hand the open fragment to the repairer.
	return content[start:]
}
