package prompt

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"adcraft/internal/domain"
)

func TestStaticCompleterReturnsSchemaKeys(t *testing.T) {
	t.Parallel()
	req := domain.AdRequest{BrandName: "acme outdoors", CompanyType: domain.CompanyTypeProduct, Description: "eco bottles", TargetAudience: "hikers", Tone: domain.ToneFriendly}
	text, err := NewStaticCompleter().Complete(context.Background(), CompletionRequest{Prompt: BuildAdPrompt(req), Ad: req})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("static reply is not json: %v", err)
	}
	for _, key := range []string{KeyHeadline, KeyDescription, KeyHashtags, KeyImagePrompt} {
		if _, ok := out[key]; !ok {
			t.Fatalf("missing key %q in %s", key, text)
		}
	}
	if headline := out[KeyHeadline].(string); !strings.HasPrefix(headline, "Acme Outdoors") {
		t.Fatalf("headline = %q", headline)
	}
	tags := out[KeyHashtags].([]any)
	if tags[0] != "#acmeoutdoors" {
		t.Fatalf("hashtags = %v", tags)
	}
}

func TestStaticCompleterHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewStaticCompleter().Complete(ctx, CompletionRequest{}); err == nil {
		t.Fatal("expected context error")
	}
}
