package expand

import "strings"

// SWD computes the "simplified working directory": pwd with any leading
// occurrence of home replaced by '~' (spec §4.5). When home is unset the
// caller should pass homeSet=false, in which case the literal "?" is used
// as the (non-matching, in normal setups) replacement target.
func SWD(pwd string, home string, homeSet bool) string {
	target := home
	if !homeSet {
		target = "?"
	}
	if strings.HasPrefix(pwd, target) {
		return "~" + pwd[len(target):]
	}
	return pwd
}

// MWD computes the "minimal working directory" by compressing every
// leading path segment of SWD to its first grapheme cluster, approximated
// here as its first rune (extended to the first two runes when that rune
// is '.', so dotfile prefixes stay recognizable) -- spec §4.5.
func MWD(pwd string, home string, homeSet bool) string {
	swd := SWD(pwd, home, homeSet)

	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(swd, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) <= 2 {
		return swd
	}

	var b strings.Builder
	for _, seg := range segments[:len(segments)-1] {
		runes := []rune(seg)
		first := string(runes[0])
		b.WriteString(first)
		if first == "." && len(runes) > 1 {
			b.WriteString(string(runes[1]))
		}
		b.WriteByte('/')
	}
	b.WriteString(segments[len(segments)-1])
	return b.String()
}
