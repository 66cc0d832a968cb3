package cardtext

import (
	"regexp"
	"strings"
)

// grantPattern recognizes "<subject> gain(s)|have <keyword list> [until
// end of turn]" (§4.5's Grant family), the "gain(s)"/"have" counterpart
// to parsePumpClause's "get(s)" pattern. Protection is recognized
// separately since its object is a color choice, not a keyword list.
var grantPattern = regexp.MustCompile(`^(.+?) (?:gains?|have) ([a-z ,]+?)(?: until end of turn)?$`)
var grantProtectionPattern = regexp.MustCompile(`^(.+?) (?:gains?|have) protection from (the color of (?:its|their) choice|a color of (?:its|their) choice)(?:,? or colorless)?$`)

// parseGrantClause recognizes the keyword-granting sentence family and
// classifies it as GrantAbilityToSource, GrantAbilitiesAll, or
// GrantAbilitiesToTarget depending on the subject, matching
// parsePumpClause's Pump/PumpAll subject-shape distinction.
func parseGrantClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if m := grantProtectionPattern.FindStringSubmatch(sentence); m != nil {
		subject := strings.TrimSpace(m[1])
		target, err := parseTargetPhrase(subject, ctx)
		if err != nil {
			return nil, true, err
		}
		allowColorless := strings.Contains(sentence, "or colorless")
		return []EffectAst{{Kind: EffGrantProtectionChoice, Target: target, AllowColorless: allowColorless, Duration: "until end of turn"}}, true, nil
	}

	m := grantPattern.FindStringSubmatch(sentence)
	if m == nil {
		return nil, false, nil
	}
	subject := strings.TrimSpace(m[1])
	keywords := splitKeywordList(m[2])
	if len(keywords) == 0 {
		return nil, false, nil
	}

	duration := ""
	if strings.HasSuffix(sentence, "until end of turn") {
		duration = "until end of turn"
	}

	target, err := parseTargetPhrase(subject, ctx)
	if err != nil {
		return nil, true, err
	}

	kind := EffGrantAbilitiesToTarget
	switch {
	case subject == "this":
		kind = EffGrantAbilityToSource
	case isPluralSubject(subject):
		kind = EffGrantAbilitiesAll
	}

	return []EffectAst{{Kind: kind, Target: target, GrantedKeywords: keywords, Duration: duration}}, true, nil
}

// splitKeywordList splits a comma/"and"-joined keyword phrase into its
// titled keyword names, reusing keyword.go's titleCase so "flying,
// vigilance and lifelink" yields ["Flying", "Vigilance", "Lifelink"].
func splitKeywordList(phrase string) []string {
	phrase = strings.ReplaceAll(phrase, " and ", ", ")
	var out []string
	for _, part := range strings.Split(phrase, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, titleCase(part))
	}
	return out
}
