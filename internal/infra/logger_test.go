package infra

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		env   string
		level string
		want  zerolog.Level
	}{
		{env: "development", level: "", want: zerolog.DebugLevel},
		{env: "production", level: "", want: zerolog.InfoLevel},
		{env: "production", level: "WARN", want: zerolog.WarnLevel},
		{env: "development", level: "error", want: zerolog.ErrorLevel},
		{env: "production", level: "loud", want: zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := resolveLevel(tc.env, tc.level); got != tc.want {
			t.Fatalf("resolveLevel(%q, %q) = %s, want %s", tc.env, tc.level, got, tc.want)
		}
	}
}
