package cardtext

import (
	"strconv"
	"strings"

	"github.com/mtgsim/cardtext/pkg/card"
)

// MetadataLineKind identifies which metadata prefix a line matched (§3).
type MetadataLineKind int

const (
	MetaManaCost MetadataLineKind = iota
	MetaTypeLine
	MetaPowerToughness
	MetaLoyalty
	MetaDefense
)

// MetadataLine is the recognized metadata prefix on a line, transient
// between intake and the normalizer.
type MetadataLine struct {
	Kind MetadataLineKind
	Raw  string
}

type metadataPrefix struct {
	kind   MetadataLineKind
	prefix string
}

// Prefixes are tried in order, case-insensitively, first match wins (§4.1).
var metadataPrefixes = []metadataPrefix{
	{MetaManaCost, "mana cost:"},
	{MetaTypeLine, "type line:"},
	{MetaTypeLine, "type:"},
	{MetaPowerToughness, "power/toughness:"},
	{MetaLoyalty, "loyalty:"},
	{MetaDefense, "defense:"},
}

// matchMetadataLine recognizes a <prefix>: line, returning the matched
// kind and the trimmed remainder, or ok=false if no prefix matches.
func matchMetadataLine(line string) (MetadataLineKind, string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			rest := strings.TrimSpace(line[len(p.prefix):])
			return p.kind, rest, true
		}
	}
	return 0, "", false
}

// applyMetadataLine folds a recognized metadata line into the builder,
// returning a ParseError if the value is malformed (§4.1).
func applyMetadataLine(b *CardBuilder, kind MetadataLineKind, rest string) error {
	switch kind {
	case MetaManaCost:
		if err := card.ValidateManaCost(rest); err != nil {
			return newParseError(err.Error(), rest)
		}
		b.card.ManaCost = rest
	case MetaTypeLine:
		super, types, sub, err := parseTypeLine(rest)
		if err != nil {
			return err
		}
		b.card.Supertypes = super
		b.card.CardTypes = types
		b.card.Subtypes = sub
		b.card.TypeLine = rest
	case MetaPowerToughness:
		p, t, err := parsePowerToughness(rest)
		if err != nil {
			return err
		}
		b.card.Power = p
		b.card.Toughness = t
	case MetaLoyalty:
		if _, err := strconv.ParseUint(rest, 10, 64); err != nil {
			return newParseError("loyalty must be an unsigned integer", rest)
		}
		b.card.Loyalty = rest
	case MetaDefense:
		if _, err := strconv.ParseUint(rest, 10, 64); err != nil {
			return newParseError("defense must be an unsigned integer", rest)
		}
		b.card.Defense = rest
	}
	return nil
}

// emDash is the long dash MTG type lines split supertypes/card-types from
// subtypes on.
const emDash = "—"

var supertypeLexicon = map[string]bool{
	"legendary": true, "basic": true, "snow": true, "world": true, "host": true,
}

var cardTypeLexicon = map[string]bool{
	"creature": true, "artifact": true, "enchantment": true, "land": true,
	"planeswalker": true, "instant": true, "sorcery": true, "battle": true,
	"kindred": true, "tribal": true,
}

// parseTypeLine splits a type line on the long em-dash (§4.1). On the
// left side, words in supertypeLexicon become supertypes and every other
// word becomes a card type, in order. The right side is split on
// whitespace into subtypes; they are not checked against any lexicon.
func parseTypeLine(line string) (supertypes, cardTypes, subtypes []string, err error) {
	left := line
	right := ""
	if idx := strings.Index(line, emDash); idx >= 0 {
		left = strings.TrimSpace(line[:idx])
		right = strings.TrimSpace(line[idx+len(emDash):])
	}
	for _, word := range strings.Fields(left) {
		lower := strings.ToLower(word)
		switch {
		case supertypeLexicon[lower]:
			supertypes = append(supertypes, word)
		case cardTypeLexicon[lower]:
			cardTypes = append(cardTypes, word)
		default:
			cardTypes = append(cardTypes, word)
		}
	}
	if right != "" {
		subtypes = strings.Fields(right)
	}
	return supertypes, cardTypes, subtypes, nil
}

// parsePowerToughness accepts N/N, */*, *+N/*+N, and the half-integer
// literal 0.5 (coerced to 0); anything else is a parse error (§4.1).
func parsePowerToughness(s string) (power, toughness string, err error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return "", "", newParseError("malformed power/toughness", s)
	}
	p, err1 := normalizePTComponent(parts[0])
	t, err2 := normalizePTComponent(parts[1])
	if err1 != nil {
		return "", "", err1
	}
	if err2 != nil {
		return "", "", err2
	}
	return p, t, nil
}

func normalizePTComponent(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "0.5" {
		return "0", nil
	}
	if c == "*" {
		return "*", nil
	}
	if strings.HasPrefix(c, "*+") {
		if _, err := strconv.Atoi(c[2:]); err != nil {
			return "", newParseError("malformed power/toughness modifier", c)
		}
		return c, nil
	}
	if _, err := strconv.Atoi(c); err != nil {
		return "", newParseError("malformed power/toughness value", c)
	}
	return c, nil
}
