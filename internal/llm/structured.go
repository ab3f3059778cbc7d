package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes a JSON object of type T from raw model output.
// Markdown fences, surrounding prose and // or /* */ comments are tolerated.
// If validator is non-nil, the decoded value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(StripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(stripComments(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

var (
	leadingFence  = regexp.MustCompile("(?i)^\\s*```(?:json)?[ \\t]*\\n?")
	trailingFence = regexp.MustCompile("\\n?[ \\t]*```\\s*$")
)

// StripCodeFences removes an opening ```json (or ```) fence and a closing
// ``` fence, then trims whitespace.
func StripCodeFences(s string) string {
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// jsonWalker steps through text while tracking whether the cursor sits
// inside a JSON string literal.
type jsonWalker struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural (outside a string).
func (w *jsonWalker) step(c byte) bool {
	switch {
	case w.escaped:
		w.escaped = false
		return false
	case w.inString && c == '\\':
		w.escaped = true
		return false
	case c == '"':
		w.inString = !w.inString
		return false
	default:
		return !w.inString
	}
}

// firstObject returns the first balanced { ... } block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	var w jsonWalker
	depth := 0
	for i := start; i < len(s); i++ {
		if !w.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripComments drops line and block comments outside string values.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var w jsonWalker
	for i := 0; i < len(s); i++ {
		c := s[i]
		structural := w.step(c)
		if structural && c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end == -1 {
					return b.String()
				}
				i += end + 3
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
