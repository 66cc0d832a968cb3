package cardtext

import (
	"strings"
	"unicode"
)

// NormalizedLine is one oracle line after lower-casing and name/reminder
// handling (§3, §4.2).
type NormalizedLine struct {
	Original   string
	Normalized string
	CharMap    CharMap
}

// normalizeLine implements §4.2's algorithm: trim, lowercase, replace full
// and short name with "this", strip parenthetical reminder text (unless
// it carries executable semantics), and maintain a char-map back to the
// original line's byte offsets. Normalization never fails.
func normalizeLine(line, fullName string) NormalizedLine {
	trimmed := strings.TrimSpace(line)
	trimOffset := strings.Index(line, trimmed)
	if trimOffset < 0 {
		trimOffset = 0
	}

	lowered, charMap := lowercaseWithMap(trimmed, trimOffset)

	shortName := fullName
	if idx := strings.Index(fullName, ","); idx >= 0 {
		shortName = fullName[:idx]
	}

	lowered, charMap = substituteName(lowered, charMap, strings.ToLower(fullName))
	lowered, charMap = substituteName(lowered, charMap, strings.ToLower(shortName))

	stripped, strippedMap, allParenthetical := stripParentheticals(lowered, charMap)

	if stripped == "" && allParenthetical {
		inner, innerMap, ok := retainExecutableParenthetical(lowered, charMap)
		if ok {
			stripped, strippedMap = inner, innerMap
		}
	}

	return NormalizedLine{Original: line, Normalized: stripped, CharMap: strippedMap}
}

// lowercaseWithMap lowercases s rune-by-rune, building a char-map whose
// entries are the absolute original-line byte offsets (baseOffset + index)
// of each output rune. Lowercasing never changes the rune count for the
// ASCII text this compiler's canonical oracle text uses.
func lowercaseWithMap(s string, baseOffset int) (string, CharMap) {
	runes := []rune(s)
	out := make([]rune, len(runes))
	m := make(CharMap, len(runes))
	offset := baseOffset
	for i, r := range runes {
		out[i] = toLowerRune(r)
		m[i] = offset
		offset += runeByteLen(r)
	}
	return string(out), m
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func runeByteLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// substituteName replaces every occurrence of name in s with the literal
// "this", spreading the four "this" characters proportionally across the
// original name's byte range in the char-map, per §4.2.
func substituteName(s string, m CharMap, name string) (string, CharMap) {
	if name == "" {
		return s, m
	}
	var outRunes []rune
	var outMap CharMap
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if matchesAt(runes, i, name) {
			nameLen := len([]rune(name))
			startOff := m[i]
			endOff := m[i+nameLen-1]
			span := endOff - startOff
			if span <= 0 {
				span = nameLen
			}
			const repl = "this"
			for k, r := range repl {
				frac := 0
				if len(repl) > 1 {
					frac = (k * span) / len(repl)
				}
				outRunes = append(outRunes, r)
				outMap = append(outMap, startOff+frac)
			}
			i += nameLen
			continue
		}
		outRunes = append(outRunes, runes[i])
		outMap = append(outMap, m[i])
		i++
	}
	return string(outRunes), outMap
}

func matchesAt(runes []rune, i int, name string) bool {
	nameRunes := []rune(name)
	if i+len(nameRunes) > len(runes) {
		return false
	}
	for j, r := range nameRunes {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}

// stripParentheticals removes matched parentheses at nesting depth >= 1
// entirely, preserving the char-map for surviving characters. It also
// reports whether the entire (trimmed) line was one top-level
// parenthetical, which the caller uses to decide whether to retain
// executable inner content.
func stripParentheticals(s string, m CharMap) (string, CharMap, bool) {
	runes := []rune(s)
	var out []rune
	var outMap CharMap
	depth := 0
	allParenthetical := len(runes) > 0 && runes[0] == '(' && runes[len(runes)-1] == ')'
	for i, r := range runes {
		switch r {
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			out = append(out, r)
			outMap = append(outMap, m[i])
		}
	}
	start, end := 0, len(out)
	for start < end && unicode.IsSpace(out[start]) {
		start++
	}
	for end > start && unicode.IsSpace(out[end-1]) {
		end--
	}
	return string(out[start:end]), outMap[start:end], allParenthetical
}

// retainExecutableParenthetical returns the content of a fully
// parenthetical line when that content contains '{' or ':' (carries
// executable semantics), per §4.2's exception.
func retainExecutableParenthetical(s string, m CharMap) (string, CharMap, bool) {
	runes := []rune(s)
	if len(runes) < 2 || runes[0] != '(' || runes[len(runes)-1] != ')' {
		return "", nil, false
	}
	inner := runes[1 : len(runes)-1]
	innerMap := m[1 : len(m)-1]
	for len(inner) > 0 && unicode.IsSpace(inner[0]) {
		inner, innerMap = inner[1:], innerMap[1:]
	}
	for len(inner) > 0 && unicode.IsSpace(inner[len(inner)-1]) {
		inner, innerMap = inner[:len(inner)-1], innerMap[:len(innerMap)-1]
	}
	innerStr := string(inner)
	if !strings.ContainsAny(innerStr, "{:") {
		return "", nil, false
	}
	return innerStr, innerMap, true
}

// splitOracleLines splits oracle text into raw lines for per-line
// processing, matching the teacher's splitOracleText helper
// (pkg/ability/parser.go) in spirit.
func splitOracleLines(text string) []string {
	raw := strings.Split(text, "\n")
	var lines []string
	for _, l := range raw {
		lines = append(lines, l)
	}
	return lines
}
