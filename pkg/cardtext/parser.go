package cardtext

import (
	"regexp"
	"strings"

	"github.com/mtgsim/cardtext/pkg/card"
)

// parseLine classifies a normalized line into a LineAst, trying each
// recognizer in the documented order (§4.4) until one succeeds. ctx
// threads through the line's own effect-sentence compilation.
func parseLine(norm string, ctx *CompileContext) (LineAst, error) {
	if isBenignNoOp(norm) {
		return LineAst{Kind: LineStatement, Effects: nil, SourceText: norm}, nil
	}

	if ast, ok, err := parseSagaChapter(norm, ctx); ok {
		return ast, err
	}

	if ast, ok, err := parseAdditionalCost(norm, ctx); ok {
		return ast, err
	}

	if ast, ok := parseOptionalCostLine(norm); ok {
		return ast, nil
	}

	if ast, ok, err := parseKeywordShapedAbility(norm, ctx); ok {
		return ast, err
	}

	if ast, ok, err := parseTriggeredLine(norm, ctx); ok {
		return ast, err
	}

	if ast, ok, err := parseActivatedLine(norm, ctx); ok {
		return ast, err
	}

	if statics, ok := matchStaticAbilities(norm); ok {
		return LineAst{Kind: LineStaticAbilities, StaticAbilities: statics, SourceText: norm}, nil
	}

	if ast, ok := parseKeywordList(norm); ok {
		return ast, nil
	}

	effects, err := parseEffectSentences(norm, ctx)
	if err != nil {
		return LineAst{}, err
	}
	if effects == nil {
		return LineAst{}, newUnsupportedLine(norm)
	}
	return LineAst{Kind: LineStatement, Effects: effects, SourceText: norm}, nil
}

// romanNumeralGroup matches a saga chapter prefix: a roman-numeral list
// (possibly comma-separated) followed by "—" or " - " (§4.4 step 2).
var romanNumeralGroup = regexp.MustCompile(`^([ivx]+(?:, ?[ivx]+)*) (?:—|-) (.+)$`)

var romanValues = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6,
}

func parseSagaChapter(line string, ctx *CompileContext) (LineAst, bool, error) {
	m := romanNumeralGroup.FindStringSubmatch(line)
	if m == nil {
		return LineAst{}, false, nil
	}
	var chapters []int
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		n, ok := romanValues[part]
		if !ok {
			return LineAst{}, true, newParseError("unrecognized roman numeral in saga chapter", part)
		}
		chapters = append(chapters, n)
	}
	effects, err := parseEffectSentences(m[2], ctx)
	if err != nil {
		return LineAst{}, true, err
	}
	return LineAst{
		Kind:    LineTriggered,
		Trigger: &TriggerSpec{Kind: TrigSagaChapter, SagaChapters: chapters},
		Effects: effects,
	}, true, nil
}

const additionalCostPrefix = "as an additional cost to cast this spell, "

func parseAdditionalCost(line string, ctx *CompileContext) (LineAst, bool, error) {
	if !strings.HasPrefix(line, additionalCostPrefix) {
		return LineAst{}, false, nil
	}
	rest := strings.TrimPrefix(line, additionalCostPrefix)
	effects, err := parseEffectSentences(rest, ctx)
	if err != nil {
		return LineAst{}, true, err
	}
	return LineAst{Kind: LineAdditionalCost, Effects: effects, SourceText: line}, true, nil
}

// parseKeywordShapedAbility handles line-parser step 4: Equip, Level up,
// and Cycling lines, which are activated abilities with a canonical
// shape rather than a free-form cost-colon-effect line.
func parseKeywordShapedAbility(line string, ctx *CompileContext) (LineAst, bool, error) {
	switch {
	case strings.HasPrefix(line, "equip "):
		cost, err := parseCost(strings.TrimPrefix(line, "equip "), ctx)
		if err != nil {
			return LineAst{}, true, err
		}
		ability := &Ability{Kind: AbilityActivated, Cost: cost, Timing: TimingSorcerySpeed, FunctionalZones: []string{"battlefield"}, Text: line}
		return LineAst{Kind: LineAbility, Ability: ability, SourceText: line}, true, nil
	case strings.HasPrefix(line, "cycling "):
		cost, err := parseCost(strings.TrimPrefix(line, "cycling "), ctx)
		if err != nil {
			return LineAst{}, true, err
		}
		ability := &Ability{Kind: AbilityActivated, Cost: cost, Timing: TimingAnyTime, FunctionalZones: []string{"hand"}, Text: line}
		return LineAst{Kind: LineAbility, Ability: ability, SourceText: line}, true, nil
	case strings.HasPrefix(line, "level up "):
		cost, err := parseCost(strings.TrimPrefix(line, "level up "), ctx)
		if err != nil {
			return LineAst{}, true, err
		}
		ability := &Ability{Kind: AbilityLevel, Cost: cost, Timing: TimingSorcerySpeed, FunctionalZones: []string{"battlefield"}, Text: line}
		return LineAst{Kind: LineAbility, Ability: ability, SourceText: line}, true, nil
	}
	return LineAst{}, false, nil
}

// optionalCostLabels maps the oracle-text keyword-cost lead word to the
// OptionalCost label and whether paying it is repeatable (multikicker is;
// kicker, buyback, and entwine are not), per original_source's
// OptionalCost{label, TotalCost, repeatable} shape (§12 of SPEC_FULL.md).
var optionalCostLabels = map[string]struct {
	label      string
	repeatable bool
}{
	"kicker":      {"kicker", false},
	"multikicker": {"multikicker", true},
	"buyback":     {"buyback", false},
	"entwine":     {"entwine", false},
}

// parseOptionalCostLine recognizes a standalone "<Kicker|Multikicker|
// Buyback|Entwine> <cost>" line (§4.9's optional-cost vocabulary).
func parseOptionalCostLine(line string) (LineAst, bool) {
	words := strings.Fields(line)
	if len(words) < 2 {
		return LineAst{}, false
	}
	entry, ok := optionalCostLabels[words[0]]
	if !ok {
		return LineAst{}, false
	}
	costText := strings.Join(words[1:], " ")
	mc := card.ParseManaCost(costText)
	oc := &OptionalCost{
		Label:      entry.label,
		Cost:       TotalCost{Components: []CostComponent{{Kind: CostMana, ManaCost: mc}}},
		Repeatable: entry.repeatable,
	}
	return LineAst{Kind: LineOptionalCost, OptionalCost: oc, SourceText: line}, true
}

var triggerLeads = []string{"whenever ", "when ", "at the "}

// parseTriggeredLine handles line-parser step 5: the first token is
// "whenever"/"when"/"at the"; the trigger clause runs up to the first
// comma (or a heuristic split if absent), the effect clause follows.
func parseTriggeredLine(line string, ctx *CompileContext) (LineAst, bool, error) {
	var lead string
	for _, l := range triggerLeads {
		if strings.HasPrefix(line, l) {
			lead = l
			break
		}
	}
	if lead == "" {
		return LineAst{}, false, nil
	}

	rest := strings.TrimPrefix(line, lead)
	var triggerClause, effectClause string
	if idx := strings.Index(rest, ","); idx >= 0 {
		triggerClause = rest[:idx]
		effectClause = strings.TrimSpace(rest[idx+1:])
	} else {
		words := strings.Fields(rest)
		split := len(words)
		if split > 3 {
			split = 3
		}
		triggerClause = strings.Join(words[:split], " ")
		effectClause = strings.Join(words[split:], " ")
	}

	trigger, err := parseTriggerClause(triggerClause)
	if err != nil {
		return LineAst{}, true, err
	}

	effects, err := parseEffectSentences(effectClause, ctx)
	if err != nil {
		return LineAst{}, true, err
	}
	return LineAst{Kind: LineTriggered, Trigger: trigger, Effects: effects, SourceText: line}, true, nil
}

// parseTriggerClause recognizes the trigger-condition vocabulary widened
// from original_source/src/triggers/mod.rs (§12 of SPEC_FULL.md),
// including the "either"/"or" combinators.
func parseTriggerClause(clause string) (*TriggerSpec, error) {
	clause = strings.TrimSpace(clause)

	if strings.Contains(clause, " or ") {
		parts := strings.SplitN(clause, " or ", 2)
		left, errLeft := parseTriggerClause(parts[0])
		right, errRight := parseTriggerClause(parts[1])
		switch {
		case errLeft == nil && errRight == nil:
			return triggerOr(left, right), nil
		case errLeft == nil:
			return triggerEither(left), nil
		case errRight == nil:
			return triggerEither(right), nil
		default:
			return nil, newParseError("neither operand of 'or' trigger clause parsed", clause)
		}
	}

	switch {
	case strings.Contains(clause, "enters the battlefield") || strings.Contains(clause, "enters"):
		return &TriggerSpec{Kind: TrigEntersBattlefield}, nil
	case strings.Contains(clause, "dies"):
		return &TriggerSpec{Kind: TrigDies}, nil
	case strings.Contains(clause, "leaves the battlefield"):
		return &TriggerSpec{Kind: TrigLeavesBattlefield}, nil
	case strings.Contains(clause, "attacks") && strings.Contains(clause, "blocks"):
		return &TriggerSpec{Kind: TrigAttacksOrBlocks}, nil
	case strings.Contains(clause, "attacks"):
		return &TriggerSpec{Kind: TrigAttacks}, nil
	case strings.Contains(clause, "blocks"):
		return &TriggerSpec{Kind: TrigBlocks}, nil
	case strings.Contains(clause, "deals combat damage to a player") || strings.Contains(clause, "deals combat damage to you"):
		return &TriggerSpec{Kind: TrigCombatDamageToPlayer}, nil
	case strings.Contains(clause, "deals damage"):
		return &TriggerSpec{Kind: TrigDamageDealt}, nil
	case strings.Contains(clause, "becomes the target"):
		return &TriggerSpec{Kind: TrigBecomesTargeted}, nil
	case strings.Contains(clause, "upkeep"):
		return &TriggerSpec{Kind: TrigBeginningOfUpkeep}, nil
	case strings.Contains(clause, "beginning of combat"):
		return &TriggerSpec{Kind: TrigBeginningOfCombat}, nil
	case strings.Contains(clause, "end step") || strings.Contains(clause, "end of turn"):
		return &TriggerSpec{Kind: TrigEndOfTurn}, nil
	case strings.Contains(clause, "cast"):
		return &TriggerSpec{Kind: TrigSpellCast}, nil
	case strings.Contains(clause, "counter is put") || strings.Contains(clause, "counters are put"):
		return &TriggerSpec{Kind: TrigCounterPlaced}, nil
	case strings.Contains(clause, "gain") && strings.Contains(clause, "life"):
		return &TriggerSpec{Kind: TrigLifeGained}, nil
	case strings.Contains(clause, "land") && strings.Contains(clause, "play"):
		return &TriggerSpec{Kind: TrigLandPlayed}, nil
	}

	return nil, newParseError("unrecognized trigger clause", clause)
}

// costAtoms are the recognized lead tokens of an activation cost, used to
// decide whether a colon in the line begins an activated ability
// (§4.4 step 6).
var costAtoms = map[string]bool{
	"tap": true, "t": true, "pay": true, "discard": true,
	"sacrifice": true, "put": true, "remove": true, "e": true,
}

func parseActivatedLine(line string, ctx *CompileContext) (LineAst, bool, error) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return LineAst{}, false, nil
	}
	preColon := strings.TrimSpace(line[:idx])
	firstWord := strings.Fields(preColon)
	isCostAtom := false
	if len(firstWord) > 0 {
		lead := firstWord[0]
		if costAtoms[lead] || strings.HasPrefix(lead, "{") {
			isCostAtom = true
		}
	}
	if !isCostAtom {
		return LineAst{}, false, nil
	}

	cost, err := parseCost(preColon, ctx)
	if err != nil {
		return LineAst{}, true, err
	}
	effectClause := strings.TrimSpace(line[idx+1:])
	effects, err := parseEffectSentences(effectClause, ctx)
	if err != nil {
		return LineAst{}, true, err
	}

	kind := AbilityActivated
	if effectsAreManaOnly(effects) {
		kind = AbilityMana
	}

	ability := &Ability{
		Kind:            kind,
		Cost:            cost,
		Effects:         runtimeEffectsFrom(ctx, effects),
		Timing:          TimingAnyTime,
		FunctionalZones: []string{"battlefield"},
		Text:            line,
	}
	return LineAst{Kind: LineAbility, Ability: ability, SourceText: line}, true, nil
}

// effectsAreManaOnly reports whether every effect an activated line
// produces adds mana, which is what makes it a mana ability under the
// comprehensive rules (CR 605.1a) — the shape of its cost is irrelevant;
// "{1}, {T}: Destroy target artifact." costs mana but isn't a mana ability.
func effectsAreManaOnly(effects []EffectAst) bool {
	if len(effects) == 0 {
		return false
	}
	for _, e := range effects {
		switch e.Kind {
		case EffAddMana, EffAddManaAnyColor, EffAddManaAnyOneColor,
			EffAddManaCommanderIdentity, EffAddManaImprintedColors:
		default:
			return false
		}
	}
	return true
}

func runtimeEffectsFrom(ctx *CompileContext, asts []EffectAst) []RuntimeEffect {
	var out []RuntimeEffect
	for _, a := range asts {
		id := ctx.allocEffectID()
		out = append(out, newRuntimeEffect(id, a))
	}
	return out
}
