package career

import "errors"

var (
	ErrNoObject   = errors.New("no JSON object in response")
	ErrUnbalanced = errors.New("JSON object in response is not closed")
)

// ExtractObject returns the first balanced {...} span of text. Braces inside
// JSON string literals are ignored, so descriptions that mention "{" or "}"
// neither truncate nor extend the match.
func ExtractObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if start < 0 {
			if ch == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	if start < 0 {
		return "", ErrNoObject
	}
	return "", ErrUnbalanced
}
