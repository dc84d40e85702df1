package image

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	defaultPollinationsBaseURL = "https://image.pollinations.ai"

	// Width and Height of every rendered ad image.
	Width  = 512
	Height = 512
)

// URLBuilder derives a renderable image URL from a text prompt.
type URLBuilder interface {
	URL(prompt string) string
}

// PollinationsURLBuilder targets a text-to-image service that renders on GET,
// with the prompt carried as a single path segment.
type PollinationsURLBuilder struct {
	baseURL string
}

func NewPollinationsURLBuilder(baseURL string) *PollinationsURLBuilder {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultPollinationsBaseURL
	}
	return &PollinationsURLBuilder{baseURL: baseURL}
}

// URL replaces spaces with underscores and percent-encodes the rest of the
// prompt so it stays one path segment.
func (b *PollinationsURLBuilder) URL(prompt string) string {
	segment := url.PathEscape(strings.ReplaceAll(prompt, " ", "_"))
	return fmt.Sprintf("%s/prompt/%s?width=%d&height=%d", b.baseURL, segment, Width, Height)
}

var _ URLBuilder = (*PollinationsURLBuilder)(nil)
