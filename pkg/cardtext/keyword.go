package cardtext

import "strings"

// simpleKeywords is the closed set of recognizable keyword-phrase
// templates for line-parser step 8 (§4.4). Each entry either matches a
// bare word or a "word N" / "word from X" shaped phrase; simple keywords
// are listed by name, parametric ones are handled in matchKeywordPhrase.
var simpleKeywords = map[string]bool{
	"flying": true, "vigilance": true, "menace": true, "haste": true,
	"trample": true, "lifelink": true, "deathtouch": true, "reach": true,
	"first strike": true, "double strike": true, "defender": true,
	"indestructible": true, "hexproof": true, "flash": true,
	"shroud": true, "changeling": true, "unblockable": true,
}

// matchKeywordPhrase recognizes one comma-separated segment of a keyword
// list as a StaticAbility, covering ward N, toxic N, bushido N, protection
// from <color>(s), and the simple keyword set (§4.4 step 8).
func matchKeywordPhrase(segment string) (StaticAbility, bool) {
	seg := strings.TrimSpace(segment)
	lower := strings.ToLower(seg)

	if simpleKeywords[lower] {
		return StaticAbility{Name: titleCase(lower)}, true
	}

	if n, ok := trimmedIntSuffix(lower, "ward"); ok {
		return StaticAbility{Name: "Ward", PowerMod: n}, true
	}
	if n, ok := trimmedIntSuffix(lower, "toxic"); ok {
		return StaticAbility{Name: "Toxic", PowerMod: n}, true
	}
	if n, ok := trimmedIntSuffix(lower, "bushido"); ok {
		return StaticAbility{Name: "Bushido", PowerMod: n}, true
	}

	if strings.HasPrefix(lower, "protection from ") {
		rest := strings.TrimPrefix(lower, "protection from ")
		return StaticAbility{Name: "Protection", Marker: rest}, true
	}

	return StaticAbility{}, false
}

// trimmedIntSuffix matches "<prefix> <N>" and returns N.
func trimmedIntSuffix(s, prefix string) (int, bool) {
	if !strings.HasPrefix(s, prefix+" ") {
		return 0, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(s, prefix))
	n, err := atoiStrict(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func atoiStrict(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, newParseError("expected integer", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, newParseError("expected integer", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// parseKeywordList attempts line-parser step 8: every comma-separated
// segment of the line must be a recognized keyword phrase.
func parseKeywordList(line string) (LineAst, bool) {
	segments := strings.Split(line, ",")
	var keywords []StaticAbility
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		kw, ok := matchKeywordPhrase(seg)
		if !ok {
			return LineAst{}, false
		}
		keywords = append(keywords, kw)
	}
	if len(keywords) == 0 {
		return LineAst{}, false
	}
	return LineAst{Kind: LineKeywordList, Keywords: keywords, SourceText: line}, true
}
