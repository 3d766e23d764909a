package expand

import (
	"strconv"
	"strings"
)

var namedColors = map[string]string{
	"black":   "30",
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"white":   "37",
	"default": "39",
}

// Color parses the suffix of a c::/color:: namespace reference (spec §4.2)
// into a terminal SGR escape sequence. The suffix is a comma-separated list
// of tokens: "reset", "bold", a named color, or a decimal/0x-hex 256-color
// index. An empty suffix, or one containing any unrecognized token,
// returns ok=false.
func Color(spec string) (string, bool) {
	tokens := strings.Split(spec, ",")
	codes := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "":
			continue
		case tok == "reset":
			codes = append(codes, "0")
		case tok == "bold":
			codes = append(codes, "1")
		default:
			if code, ok := namedColors[tok]; ok {
				codes = append(codes, code)
				continue
			}
			if n, ok := parseColorIndex(tok); ok {
				codes = append(codes, "38;5;"+strconv.Itoa(n))
				continue
			}
			return "", false
		}
	}
	if len(codes) == 0 {
		return "", false
	}
	return "\x1b[" + strings.Join(codes, ";") + "m", true
}

func parseColorIndex(tok string) (int, bool) {
	base := 10
	digits := tok
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		digits = tok[2:]
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return int(n), true
}

// Hex parses the suffix of an x::/hex:: namespace reference (spec §4.2):
// exactly one hex byte, returned as the single character it encodes.
func Hex(spec string) (string, bool) {
	n, err := strconv.ParseUint(spec, 16, 8)
	if err != nil {
		return "", false
	}
	return string(rune(n)), true
}
