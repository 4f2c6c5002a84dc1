package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject recovers a JSON object from a model reply that may wrap it
// in markdown fences or surrounding prose. It unmarshals into dst.
func ExtractJSONObject(reply string, dst any) error {
	cleaned := StripFences(reply)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object found in reply")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), dst); err != nil {
		return fmt.Errorf("parse reply JSON: %w", err)
	}
	return nil
}

// StripFences removes ```json / ``` markdown fences from a model reply.
func StripFences(reply string) string {
	reply = strings.ReplaceAll(reply, "```json", "")
	reply = strings.ReplaceAll(reply, "```", "")
	return strings.TrimSpace(reply)
}
