package image

import (
	"net/url"
	"strings"
	"testing"
)

func TestPollinationsURLBuilder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		base    string
		prompt  string
		want    string
		segment string
	}{
		{
			name:    "spaces",
			prompt:  "a red car",
			want:    "https://image.pollinations.ai/prompt/a_red_car?width=512&height=512",
			segment: "a_red_car",
		},
		{
			name:    "reserved characters are escaped",
			base:    "https://img.example.com/",
			prompt:  "sunset/beach? 50% #summer",
			want:    "https://img.example.com/prompt/sunset%2Fbeach%3F_50%25_%23summer?width=512&height=512",
			segment: "sunset/beach?_50%_#summer",
		},
		{
			name:    "empty prompt",
			prompt:  "",
			want:    "https://image.pollinations.ai/prompt/?width=512&height=512",
			segment: "",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NewPollinationsURLBuilder(tc.base).URL(tc.prompt)
			if got != tc.want {
				t.Fatalf("URL(%q) = %q, want %q", tc.prompt, got, tc.want)
			}
			parsed, err := url.Parse(got)
			if err != nil {
				t.Fatalf("url.Parse(%q): %v", got, err)
			}
			if seg := strings.TrimPrefix(parsed.Path, "/prompt/"); seg != tc.segment {
				t.Fatalf("decoded segment = %q, want %q", seg, tc.segment)
			}
			q := parsed.Query()
			if q.Get("width") != "512" || q.Get("height") != "512" {
				t.Fatalf("size query = %v", q)
			}
		})
	}
}
