package cardtext

import "strings"

// TokenDefinition is the resolved shape of a token the compiler can
// create (§4.8).
type TokenDefinition struct {
	Name      string
	CardTypes []string
	Subtypes  []string
	Power     string
	Toughness string
	Colors    []string
	Keywords  []string
}

// resolveTokenDefinition looks up name in the fixed token-definition
// table keyed by substring presence, falling back to a generic parse
// that requires the word "creature", then failing hard if neither
// succeeds (§4.8, §9's "return a hard error rather than guessing").
func resolveTokenDefinition(name string) (TokenDefinition, error) {
	lower := strings.ToLower(name)
	for _, entry := range lexicon.TokenDefinitions {
		if strings.Contains(lower, entry.Match) {
			return TokenDefinition{
				Name:      entry.Name,
				CardTypes: entry.CardTypes,
				Subtypes:  entry.Subtypes,
				Power:     ptField(entry.Power),
				Toughness: ptField(entry.Toughness),
				Colors:    entry.Colors,
				Keywords:  entry.Keywords,
			}, nil
		}
	}

	if def, ok := genericTokenParse(name); ok {
		return def, nil
	}

	return TokenDefinition{}, newParseError("unsupported token", name)
}

func ptField(v int) string {
	if v == -1 {
		return "*"
	}
	return itoa(v)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// genericTokenParse handles the §4.8 fallback: requires the word
// "creature"; extracts P/T from the first N/N token, subtypes from the
// remaining words, colors from color words, and keyword abilities from
// the recognizable-keyword list.
func genericTokenParse(name string) (TokenDefinition, bool) {
	words := strings.Fields(strings.ToLower(name))
	hasCreature := false
	var power, toughness string
	var subtypes, colors, keywords []string

	colorWords := map[string]string{
		"white": "W", "blue": "U", "black": "B", "red": "R", "green": "G", "colorless": "C",
	}

	for _, w := range words {
		switch {
		case w == "creature":
			hasCreature = true
		case colorWords[w] != "":
			colors = append(colors, colorWords[w])
		case simpleKeywords[w]:
			keywords = append(keywords, titleCase(w))
		case strings.Contains(w, "/"):
			parts := strings.SplitN(w, "/", 2)
			if len(parts) == 2 && power == "" {
				power, toughness = parts[0], parts[1]
			}
		case w == "token" || w == "with" || w == "a" || w == "an":
			// filler words, not a subtype
		default:
			subtypes = append(subtypes, titleCase(w))
		}
	}

	if !hasCreature {
		return TokenDefinition{}, false
	}

	return TokenDefinition{
		Name:      titleCase(strings.Join(subtypes, " ")),
		CardTypes: []string{"Creature"},
		Subtypes:  subtypes,
		Power:     power,
		Toughness: toughness,
		Colors:    colors,
		Keywords:  keywords,
	}, true
}
