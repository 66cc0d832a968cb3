package cardtext

import (
	"regexp"
	"strconv"
	"strings"
)

// staticRecognizer is one entry of the ordered static-ability recognizer
// catalog (§4.4 step 7, §9's "ordered recognizer table" guidance). It
// mirrors the teacher's AbilityPattern/addPattern idiom
// (pkg/ability/parser.go): a regex plus a parser function, tried in a
// fixed order so longer/more-specific patterns precede shorter/generic
// ones.
type staticRecognizer struct {
	name    string
	pattern *regexp.Regexp
	parse   func(matches []string, line string) (StaticAbility, error)
}

// staticCatalog is the ordered table line-parser step 7 walks. Order
// matters: "this creature loses all abilities and has base power and
// toughness N/N" must be tried before the shorter "loses all abilities"
// pattern, matching §9's explicit example.
var staticCatalog = []staticRecognizer{
	{
		name:    "lose-all-abilities-and-base-pt",
		pattern: regexp.MustCompile(`^this loses all abilities and (?:has base power and toughness |is a? ?)(\d+)/(\d+)`),
		parse: func(m []string, line string) (StaticAbility, error) {
			p, _ := strconv.Atoi(m[1])
			t, _ := strconv.Atoi(m[2])
			return StaticAbility{Name: "CharacteristicDefining", SetsBasePT: true, BasePower: p, BaseTough: t, GrantedKeywords: nil, Marker: "loses-all-abilities"}, nil
		},
	},
	{
		name:    "lose-all-abilities",
		pattern: regexp.MustCompile(`^this loses all abilities`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "LosesAllAbilities"}, nil
		},
	},
	{
		name:    "characteristic-defining-pt",
		pattern: regexp.MustCompile(`^this(?:'s| is) power and toughness are each equal to (.+)`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "CharacteristicDefining", SetsBasePT: true, Marker: strings.TrimSpace(m[1])}, nil
		},
	},
	{
		name:    "shuffle-graveyard-into-library-replacement",
		pattern: regexp.MustCompile(`^if this would die, instead shuffle it into its owner's library`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "ShuffleIntoLibraryReplacement", Restriction: "dies"}, nil
		},
	},
	{
		name:    "enters-tapped",
		pattern: regexp.MustCompile(`^this enters tapped`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "EntersTapped"}, nil
		},
	},
	{
		name:    "cant-block",
		pattern: regexp.MustCompile(`^this can't block`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "Cant", Restriction: "block"}, nil
		},
	},
	{
		name:    "cant-attack-or-block",
		pattern: regexp.MustCompile(`^this can't attack or block`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "Cant", Restriction: "attack-or-block"}, nil
		},
	},
	{
		name:    "anthem-all-creatures-you-control",
		pattern: regexp.MustCompile(`^other creatures you control get \+(\d+)/\+(\d+)`),
		parse: func(m []string, line string) (StaticAbility, error) {
			p, _ := strconv.Atoi(m[1])
			t, _ := strconv.Atoi(m[2])
			return StaticAbility{Name: "Anthem", PowerMod: p, ToughnessMod: t, Filter: ObjectFilter{CardTypes: []string{"creature"}, Controller: PlayerYou}}, nil
		},
	},
	{
		name:    "protection-from-color",
		pattern: regexp.MustCompile(`^this has protection from (\w+)`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "Protection", Marker: m[1]}, nil
		},
	},
	{
		name:    "equipped-creature-has",
		pattern: regexp.MustCompile(`^equipped creature has (.+)`),
		parse: func(m []string, line string) (StaticAbility, error) {
			return StaticAbility{Name: "EquippedCreatureHas", Marker: strings.TrimSpace(m[1])}, nil
		},
	},
	{
		name:    "spells-you-cast-cost-reduction",
		pattern: regexp.MustCompile(`^spells you cast cost \{(\d+)\} less to cast`),
		parse: func(m []string, line string) (StaticAbility, error) {
			n, _ := strconv.Atoi(m[1])
			return StaticAbility{Name: "CostReduction", PowerMod: n}, nil
		},
	},
}

// matchStaticAbilities walks staticCatalog in order and returns every
// match (a single line can yield more than one StaticAbility record,
// §4.4 step 7: "successful matches yield one or more StaticAbility
// records").
func matchStaticAbilities(line string) ([]StaticAbility, bool) {
	var out []StaticAbility
	for _, rec := range staticCatalog {
		m := rec.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ability, err := rec.parse(m, line)
		if err != nil {
			continue
		}
		out = append(out, ability)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
