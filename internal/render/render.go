// Package render substitutes configuration values into a Makefile template.
//
// Every key of a config.Values is recognized in three spellings: $(KEY),
// ${KEY} and a bare $KEY. The text is scanned once from left to right, so
// substituted values are never themselves rescanned and the result does not
// depend on the order of the keys.
//
// A bare $KEY resolves to the longest key the text starts with, so $CXXFLAGS
// is CXXFLAGS rather than CXX followed by the literal "FLAGS". Nothing else
// limits a bare match: $TARGETS renders as the TARGET value followed by "S",
// and in $$(CXX) the second dollar still opens a placeholder.
package render

import (
	"strings"

	"github.com/vk/genmake/internal/config"
)

// Render returns text with every recognized placeholder replaced by its
// value. Unrecognized tokens are left as they are.
func Render(text string, values *config.Values) string {
	keys := values.Keys()

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 == len(text) {
			b.WriteByte(text[i])
			i++
			continue
		}

		switch next := text[i+1]; next {
		case '(', '{':
			if val, n, ok := enclosed(text[i+2:], closerFor(next), values); ok {
				b.WriteString(val)
				i += 2 + n
				continue
			}
		default:
			if key, ok := bareKey(text[i+1:], keys); ok {
				b.WriteString(values.Value(key))
				i += 1 + len(key)
				continue
			}
		}

		b.WriteByte('$')
		i++
	}

	return b.String()
}

func closerFor(opener byte) byte {
	if opener == '{' {
		return '}'
	}
	return ')'
}

// enclosed resolves the name that runs up to closer at the start of rest.
// n counts the consumed bytes including the closer.
func enclosed(rest string, closer byte, values *config.Values) (string, int, bool) {
	end := strings.IndexByte(rest, closer)
	if end < 0 {
		return "", 0, false
	}
	val, ok := values.Get(rest[:end])
	if !ok {
		return "", 0, false
	}
	return val, end + 1, true
}

// bareKey returns the longest key that prefixes rest.
func bareKey(rest string, keys []string) (string, bool) {
	best := ""
	for _, k := range keys {
		if len(k) > len(best) && strings.HasPrefix(rest, k) {
			best = k
		}
	}
	return best, best != ""
}
