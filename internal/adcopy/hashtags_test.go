package adcopy

import (
	"encoding/json"
	"testing"
)

func TestNormalizeHashtags(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "list", raw: `["#a","#b"]`, want: "#a #b"},
		{name: "list with non strings", raw: `["#a", 2, true]`, want: "#a 2 true"},
		{name: "empty list", raw: `[]`, want: ""},
		{name: "stringified single quoted list", raw: `"['#a', '#b']"`, want: "#a #b"},
		{name: "stringified json list", raw: `"[\"#a\", \"#b\"]"`, want: "#a #b"},
		{name: "stringified mixed quotes", raw: `"[ '#it\\'s', \"#b\", ]"`, want: "#it's #b"},
		{name: "comma separated string", raw: `"#a, #b"`, want: "#a, #b"},
		{name: "malformed list string", raw: `"[#a"`, want: "[#a"},
		{name: "unterminated quote", raw: `"['#a]"`, want: "['#a]"},
		{name: "list of expressions is not evaluated", raw: `"[__import__('os')]"`, want: "[__import__('os')]"},
		{name: "trailing garbage", raw: `"['#a'] + ['#b']"`, want: "['#a'] + ['#b']"},
		{name: "stringified numbers", raw: `"[1, 2]"`, want: "[1, 2]"},
		{name: "stringified mixed element types", raw: `"[\"#a\", 1]"`, want: `["#a", 1]`},
		{name: "stringified single quoted with number", raw: `"['#a', 1]"`, want: "['#a', 1]"},
		{name: "null", raw: `null`, want: ""},
		{name: "absent", raw: ``, want: ""},
		{name: "number", raw: `42`, want: "42"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeHashtags(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("NormalizeHashtags(%s) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseQuotedList(t *testing.T) {
	t.Parallel()
	got, err := parseQuotedList(`['#one','#two' , "#three"]`)
	if err != nil {
		t.Fatalf("parseQuotedList returned error: %v", err)
	}
	want := []string{"#one", "#two", "#three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, bad := range []string{`[`, `['a' 'b']`, `['a',,]`, `[a]`, `x['a']`} {
		if _, err := parseQuotedList(bad); err == nil {
			t.Fatalf("parseQuotedList(%q) expected error", bad)
		}
	}
}
