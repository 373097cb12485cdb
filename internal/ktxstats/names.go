package ktxstats

import "strings"

// charTable maps QuakeWorld control codes to their printable equivalents.
// Codes with an empty entry have no printable form and are dropped.
var charTable = [32]string{
	0: "=", 2: "=", 5: ".",
	10: " ",
	14: ".", 15: ".",
	16: "[", 17: "]",
	18: "0", 19: "1", 20: "2", 21: "3", 22: "4",
	23: "5", 24: "6", 25: "7", 26: "8", 27: "9",
	28: ".", 29: "=", 30: "=", 31: "=",
}

// DecodeName translates the QuakeWorld high-bit character set to plain
// text. Codepoints 128-255 fold down to their low half, control codes map
// through charTable, and the result is trimmed of surrounding whitespace.
// Codepoints outside the legacy byte range pass through untouched.
func DecodeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r >= 128 && r < 256 {
			r -= 128
		}
		if r < 32 {
			b.WriteString(charTable[r])
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
