package domain

import "unicode"

// FormatDisplayName converts a camel-case identifier into space-separated,
// capitalized words: "loginButton" becomes "Login Button". A space is
// inserted before every upper-case rune except the first rune of the
// string, then the first rune is upper-cased. The rule is applied
// literally, so "ABC" becomes "A B C". Empty input returns empty output.
func FormatDisplayName(identifier string) string {
	if identifier == "" {
		return ""
	}

	runes := []rune(identifier)
	out := make([]rune, 0, len(runes)+len(runes)/2)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			out = append(out, ' ')
		}

		out = append(out, r)
	}

	out[0] = unicode.ToUpper(out[0])

	return string(out)
}
