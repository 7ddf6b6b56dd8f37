package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseComparison decodes a topic comparison reply into party positions.
// Replies wrapped in a Markdown code fence are unwrapped first.
func ParseComparison(text string) (map[string]string, error) {
	var positions map[string]string
	if err := json.Unmarshal([]byte(stripFence(text)), &positions); err != nil {
		return nil, fmt.Errorf("parsing comparison reply: %w", err)
	}
	if positions == nil {
		return nil, fmt.Errorf("parsing comparison reply: not a JSON object")
	}
	return positions, nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	// Drop the opening fence with its language tag.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
