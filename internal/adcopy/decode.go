// Package adcopy turns a model reply into ad copy fields.
package adcopy

import (
	"encoding/json"
	"fmt"
	"strings"

	"adcraft/internal/domain"
	"adcraft/internal/providers/prompt"
)

// Copy is the extracted, normalized model output.
type Copy struct {
	Headline    string
	Description string
	Hashtags    string
	ImagePrompt string
}

// Complete reports whether the fields required to publish the ad are present.
// Hashtags are optional.
func (c Copy) Complete() bool {
	return strings.TrimSpace(c.Headline) != "" &&
		strings.TrimSpace(c.Description) != "" &&
		strings.TrimSpace(c.ImagePrompt) != ""
}

// Decode parses a model reply. The reply must be a JSON object, optionally
// wrapped in a markdown code fence.
func Decode(raw string) (Copy, error) {
	text := trimCodeFence(raw)
	if text == "" {
		return Copy{}, fmt.Errorf("%w: empty reply", domain.ErrInvalidPayload)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return Copy{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if fields == nil {
		return Copy{}, fmt.Errorf("%w: reply is not an object", domain.ErrInvalidPayload)
	}
	return Copy{
		Headline:    stringField(fields[prompt.KeyHeadline]),
		Description: stringField(fields[prompt.KeyDescription]),
		Hashtags:    NormalizeHashtags(fields[prompt.KeyHashtags]),
		ImagePrompt: stringField(fields[prompt.KeyImagePrompt]),
	}, nil
}

// stringField returns the value when it is a JSON string and "" otherwise.
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
