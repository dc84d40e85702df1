package adcopy

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errNotList = errors.New("not a list literal")

// NormalizeHashtags coerces the relevant_hashtags value into one
// space-separated string.
//
//   - array: elements joined with single spaces
//   - string starting with "[": decoded as a list of strings when possible,
//     otherwise returned unchanged
//   - any other string: unchanged
//   - absent or null: ""
//   - anything else: its JSON text
func NormalizeHashtags(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return string(raw)
		}
		return joinItems(items)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return normalizeHashtagString(s)
	default:
		return string(raw)
	}
}

func normalizeHashtagString(s string) string {
	if !strings.HasPrefix(s, "[") {
		return s
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err == nil {
		return strings.Join(items, " ")
	}
	list, err := parseQuotedList(s)
	if err != nil {
		return s
	}
	return strings.Join(list, " ")
}

func joinItems(items []json.RawMessage) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, string(bytes.TrimSpace(item)))
	}
	return strings.Join(parts, " ")
}

// parseQuotedList decodes a list literal whose elements are all quoted
// strings, e.g. ['#a', "#b"]. Nothing else is accepted.
func parseQuotedList(s string) ([]string, error) {
	p := &listParser{src: s}
	p.skipSpace()
	if !p.consume('[') {
		return nil, errNotList
	}
	var out []string
	p.skipSpace()
	if p.consume(']') {
		return p.finish(out)
	}
	for {
		p.skipSpace()
		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
		p.skipSpace()
		if p.consume(']') {
			return p.finish(out)
		}
		if !p.consume(',') {
			return nil, errNotList
		}
		p.skipSpace()
		// trailing comma
		if p.consume(']') {
			return p.finish(out)
		}
	}
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *listParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) finish(out []string) ([]string, error) {
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errNotList
	}
	return out, nil
}

func (p *listParser) quoted() (string, error) {
	if p.pos >= len(p.src) {
		return "", errNotList
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", errNotList
	}
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.src) {
				return "", errNotList
			}
			sb.WriteByte(unescape(p.src[p.pos+1]))
			p.pos += 2
		case c == '\n':
			return "", errNotList
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", errNotList
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
