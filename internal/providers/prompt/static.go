package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StaticCompleter produces canned copy from the structured request. It lets
// the service run without network access or an API key.
type StaticCompleter struct{}

func NewStaticCompleter() *StaticCompleter {
	return &StaticCompleter{}
}

func (s *StaticCompleter) Name() string { return staticProviderName }

func (s *StaticCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := cases.Title(language.Und)
	brand := coalesce(req.Ad.BrandName, "Your Brand")
	audience := coalesce(req.Ad.TargetAudience, "everyone")
	offer := strings.ToLower(coalesce(string(req.Ad.CompanyType), "product"))
	payload := map[string]any{
		KeyHeadline:    fmt.Sprintf("%s: Made For %s", c.String(brand), c.String(audience)),
		KeyDescription: fmt.Sprintf("%s brings you a %s built around %s. Discover why %s love it.", brand, offer, coalesce(req.Ad.Description, "what matters"), audience),
		KeyHashtags:    []string{"#" + hashtagWord(brand), "#" + hashtagWord(offer), "#new"},
		KeyImagePrompt: fmt.Sprintf("a bright studio advertisement photo of a %s for %s, %s mood", offer, audience, strings.ToLower(coalesce(string(req.Ad.Tone), "friendly"))),
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hashtagWord(s string) string {
	return strings.Join(strings.Fields(s), "")
}

var _ Completer = (*StaticCompleter)(nil)
