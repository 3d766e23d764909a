package history

import "strings"

// Source is the read-only history view designator expansion resolves
// against. *Buffer satisfies it.
type Source interface {
	At(n int) (string, bool)
	FromEnd(n int) (string, bool)
	MatchPrefix(s string) (string, bool)
	MatchSubstring(s string) (string, bool)
}

// Expand scans line for "!"-prefixed history designators and replaces each
// resolvable one with the selected text of the referenced prior command.
// An unresolved designator (bad syntax, out-of-range reference, no match)
// is left in the output literally. Expansion is pure: it only reads src.
func Expand(line string, src Source) string {
	var out strings.Builder
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			out.WriteByte(c)
			out.WriteByte(line[i+1])
			i += 2
			continue
		}
		if c != '!' {
			out.WriteByte(c)
			i++
			continue
		}

		matched, consumed := expandOne(line[i:], src)
		if consumed == 0 {
			out.WriteByte(c)
			i++
			continue
		}
		out.WriteString(matched)
		i += consumed
	}
	return out.String()
}

// expandOne attempts to parse and resolve a single designator at the start
// of s (which begins with '!'). It returns the replacement text and the
// number of bytes of s the designator consumed, or consumed=0 if s does
// not begin with a recognizable designator.
func expandOne(s string, src Source) (replacement string, consumed int) {
	body, bodyLen, ok := scanDesignatorBody(s[1:])
	if !ok {
		return "", 0
	}
	consumed = 1 + bodyLen

	selector := ""
	if i := strings.IndexByte(s[consumed:], ':'); i == 0 {
		sel, selLen := scanWordSelector(s[consumed+1:])
		selector = sel
		consumed += 1 + selLen
	}

	cmd, ok := resolveEvent(body, src)
	if !ok {
		return "", 0
	}
	return applySelector(cmd, selector), consumed
}

// scanDesignatorBody parses the event reference that follows '!':
// "!", "N", "-N", "?str?", or a bare word (matched as a prefix).
func scanDesignatorBody(s string) (body string, n int, ok bool) {
	if s == "" {
		return "", 0, false
	}
	switch {
	case s[0] == '!':
		return "!", 1, true
	case s[0] == '?':
		end := strings.IndexByte(s[1:], '?')
		if end < 0 {
			return "", 0, false
		}
		return "?" + s[1:1+end] + "?", 1 + end + 1, true
	case s[0] == '-' || isDigit(s[0]):
		j := 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == 1 && s[0] == '-' {
			return "", 0, false
		}
		return s[:j], j, true
	default:
		j := 0
		for j < len(s) && isWordByte(s[j]) {
			j++
		}
		if j == 0 {
			return "", 0, false
		}
		return s[:j], j, true
	}
}

func scanWordSelector(s string) (sel string, n int) {
	j := 0
	for j < len(s) && (isWordByte(s[j]) || s[j] == '^' || s[j] == '$' || s[j] == '*') {
		j++
	}
	return s[:j], j
}

func resolveEvent(body string, src Source) (string, bool) {
	switch {
	case body == "!":
		return src.FromEnd(1)
	case strings.HasPrefix(body, "-"):
		n, ok := parseUint(body[1:])
		if !ok {
			return "", false
		}
		return src.FromEnd(n)
	case len(body) > 0 && isDigit(body[0]):
		n, ok := parseUint(body)
		if !ok {
			return "", false
		}
		return src.At(n)
	case strings.HasPrefix(body, "?") && strings.HasSuffix(body, "?") && len(body) >= 2:
		return src.MatchSubstring(body[1 : len(body)-1])
	default:
		return src.MatchPrefix(body)
	}
}

func applySelector(cmd, selector string) string {
	if selector == "" {
		return cmd
	}
	words := strings.Fields(cmd)
	if len(words) == 0 {
		return cmd
	}
	switch selector {
	case "^":
		if len(words) > 1 {
			return words[1]
		}
		return ""
	case "$":
		return words[len(words)-1]
	case "*":
		if len(words) > 1 {
			return strings.Join(words[1:], " ")
		}
		return ""
	default:
		if n, ok := parseUint(selector); ok && n < len(words) {
			return words[n]
		}
		return cmd
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.'
}

func parseUint(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
