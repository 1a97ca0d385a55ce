package vim

import "strings"

// Quote returns s as a Vim single-quoted string literal.
//
// Inside single quotes Vim treats every character literally except the
// quote itself, which is written doubled. Backslashes, spaces and double
// quotes pass through unchanged, so the encoding is lossless for any
// input: Unquote(Quote(s)) == s.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Unquote reverses Quote. It reports false if s is not a well-formed
// single-quoted literal.
func Unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", false
	}
	body := s[1 : len(s)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\'' {
			b.WriteByte(body[i])
			continue
		}
		if i+1 >= len(body) || body[i+1] != '\'' {
			return "", false
		}
		b.WriteByte('\'')
		i++
	}
	return b.String(), true
}
