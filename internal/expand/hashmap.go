package expand

import "strings"

// IsValidVariableName reports whether name consists only of characters the
// shell accepts in a variable name: alphanumerics plus '_ ? . - +'. An
// empty name is vacuously valid.
func IsValidVariableName(name string) bool {
	for _, c := range name {
		if !isValidVariableChar(c) {
			return false
		}
	}
	return true
}

func isValidVariableChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '?', c == '.', c == '-', c == '+':
		return true
	default:
		return false
	}
}

// IsHashmapReference decomposes s as "<name>[<key>]" per spec §4.6. name
// must be a valid variable name; key is whatever lies between the first
// '[' and its first following ']', with every leading and trailing quote
// character (' or ") stripped. Anything else returns ok=false.
func IsHashmapReference(s string) (name, key string, ok bool) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return "", "", false
	}
	name = s[:open]
	if !IsValidVariableName(name) {
		return "", "", false
	}
	rest := s[open+1:]
	close := strings.IndexByte(rest, ']')
	if close < 0 {
		return "", "", false
	}
	key = rest[:close]
	key = strings.Trim(key, `'"`)
	return name, key, true
}
