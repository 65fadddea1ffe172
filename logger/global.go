package logger

import (
	"bytes"
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/rainycape/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var substitutions = map[rune]string{
	'&': "and",
	'@': "at",
	'ä': "ae",
	'Ä': "Ae",
	'ö': "oe",
	'Ö': "Oe",
	'ü': "ue",
	'Ü': "Ue",
	'ß': "ss",
	'ą': "a",
	'č': "c",
	'ę': "e",
	'ė': "e",
	'į': "i",
	'š': "s",
	'ų': "u",
	'ū': "u",
	'ž': "z",
}

// substituteRune substitutes string chars with the provided substitution
// map. One pass.
func substituteRune(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, c := range s {
		if repl, ok := substitutions[c]; ok {
			buf.WriteString(repl)
		} else {
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

func replaceUnwantedChars(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			buf.WriteRune(c)
		} else {
			buf.WriteRune('-')
		}
	}
	return buf.String()
}

func makeSlug(s string) string {
	slug := strings.TrimSpace(s)
	slug = substituteRune(slug)
	slug = stripAccents(slug)
	slug = unidecode.Unidecode(slug)
	slug = strings.ToLower(slug)
	slug = replaceUnwantedChars(slug)
	for strings.Contains(slug, "--") {
		slug = strings.Replace(slug, "--", "-", -1)
	}
	return slug
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// StringToSlug converts a string to an url safe slug - no chinese or
// cyrilic supported.
func StringToSlug(instr string) string {
	if strings.Contains(instr, "&") || strings.Contains(instr, "%") {
		instr = html.UnescapeString(instr)
	}
	instr = makeSlug(instr)
	instr = strings.Trim(instr, "-")
	return instr
}

// ContainsI reports whether substr is within s, case insensitive.
func ContainsI(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// StringToInt converts a string to an int, returning 0 on failure.
func StringToInt(instr string) int {
	i, err := strconv.Atoi(strings.TrimSpace(instr))
	if err != nil {
		return 0
	}
	return i
}
