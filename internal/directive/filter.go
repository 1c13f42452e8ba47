package directive

import "strings"

const commentWhitespace = " \t\f"

// Filter decides which comments are directives.
// The zero value is disabled and matches nothing.
type Filter struct {
	prefix  string
	enabled bool
}

// Disabled ignores every comment.
func Disabled() Filter {
	return Filter{}
}

// WithPrefix matches comments whose body, after the '#' marker and leading
// whitespace, starts with prefix. Leading whitespace of prefix itself is not
// significant, so " nac3:" and "nac3:" are equivalent. Matching is case-sensitive.
func WithPrefix(prefix string) Filter {
	return Filter{prefix: strings.TrimLeft(prefix, commentWhitespace), enabled: true}
}

func (f Filter) Enabled() bool {
	return f.enabled
}

func (f Filter) Prefix() string {
	return f.prefix
}

// Match returns the directive identifier of a comment: the text after the
// prefix with surrounding whitespace trimmed. It may be empty.
func (f Filter) Match(comment string) (string, bool) {
	if !f.enabled {
		return "", false
	}
	body, ok := strings.CutPrefix(comment, "#")
	if !ok {
		return "", false
	}
	body = strings.TrimLeft(body, commentWhitespace)
	rest, ok := strings.CutPrefix(body, f.prefix)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
