package cardtext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mtgsim/cardtext/pkg/card"
)

// parseEffectSentences splits a normalized line on periods into
// sentences and parses each one independently, then concatenates the
// resulting effect lists, handling the "instead" replacement rewrite
// across sentence boundaries (§4.5).
func parseEffectSentences(line string, ctx *CompileContext) ([]EffectAst, error) {
	sentences := splitSentences(line)
	var all []EffectAst
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if isSentencePrefixNoOp(sentence) {
			continue
		}
		effects, err := parseOneSentence(sentence, ctx)
		if err != nil {
			return nil, err
		}
		if strings.Contains(sentence, "instead") && len(effects) == 1 && effects[0].Kind == EffConditional && len(all) > 0 {
			prev := all[len(all)-1]
			all = all[:len(all)-1]
			effects[0].Else = append(effects[0].Else, prev)
		}
		all = append(all, effects...)
	}
	return all, nil
}

func splitSentences(line string) []string {
	return strings.Split(line, ".")
}

var sentencePrefixNoOps = []string{
	"activate only",
	"this ability triggers only",
	"round up each time",
}

func isSentencePrefixNoOp(sentence string) bool {
	for _, p := range sentencePrefixNoOps {
		if strings.HasPrefix(sentence, p) {
			return true
		}
	}
	return false
}

// parseOneSentence dispatches to the compound sub-parsers first (vote
// preludes, "if ... instead", etc.), then falls back to the generic
// verb-first chain parser (§4.5).
func parseOneSentence(sentence string, ctx *CompileContext) ([]EffectAst, error) {
	if eff, ok, err := parseVotePrelude(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseForEachClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseIfClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseMayClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parsePumpClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseGrantClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseCantClause(sentence, ctx); ok {
		return eff, err
	}
	if eff, ok, err := parseTargetOnlyClause(sentence, ctx); ok {
		return eff, err
	}
	return parseVerbFirstChain(sentence, ctx)
}

// pumpPattern recognizes "<subject> get(s) <+N/+N|-N/-N|*+N/*+N> [until end
// of turn]" (§4.5's Pump/PumpAll family). "Gets"/"get" isn't in the
// closed verb lexicon parseVerbFirstChain scans, since the subject can be
// multi-word ("other creatures you control") and the modifier token itself
// looks like punctuation to a naive verb-first split; it's recognized as
// its own sentence shape instead, the way the vote/if/may families are.
var pumpPattern = regexp.MustCompile(`^(.+?) gets? ([+*-][\d./+*-]*) until end of turn$`)
var pumpPatternNoDuration = regexp.MustCompile(`^(.+?) gets? ([+*-][\d./+*-]*)$`)

func parsePumpClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	m := pumpPattern.FindStringSubmatch(sentence)
	duration := "until end of turn"
	if m == nil {
		m = pumpPatternNoDuration.FindStringSubmatch(sentence)
		duration = ""
	}
	if m == nil {
		return nil, false, nil
	}
	power, toughness, err := splitPTModifier(m[2])
	if err != nil {
		return nil, true, err
	}
	subject := strings.TrimSpace(m[1])
	target, err := parseTargetPhrase(subject, ctx)
	if err != nil {
		return nil, true, err
	}

	kind := EffPump
	amount := ValueExpr{Kind: ValLiteral, Literal: power}
	lowerSubject := strings.ToLower(subject)
	switch {
	case isPluralSubject(subject):
		kind = EffPumpAll
	case (lowerSubject == "it" || lowerSubject == "them") && power == 1 && toughness == 1 && ctx.hasLastEffectID:
		// "it gets +1/+1" is the printed placeholder for "by however
		// much the preceding tagged effect did" (§4.7's PumpByLastEffect
		// lowering rule: the parsed number 1 binds to
		// Value::EffectValue(last_effect_id), any other printed value is
		// a literal pump amount).
		kind = EffPumpByLastEffect
		amount = ValueExpr{Kind: ValEffectValue, EffectID: ctx.lastEffectID}
	}
	return []EffectAst{{Kind: kind, Target: target, Amount: amount, PowerMod: power, ToughnessMod: toughness, Duration: duration}}, true, nil
}

// splitPTModifier parses a "+1/+0"/"-2/-2"/"*+1/*+1" modifier into its two
// signed components (§4.1's P/T modifier shapes, reused for Pump amounts).
func splitPTModifier(s string) (int, int, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, newParseError("malformed pump modifier", s)
	}
	p, err := signedInt(parts[0])
	if err != nil {
		return 0, 0, err
	}
	t, err := signedInt(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return p, t, nil
}

func signedInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newParseError("malformed pump modifier component", s)
	}
	return n, nil
}

// isPluralSubject distinguishes a PumpAll subject ("other creatures you
// control", "creatures you control") from a single-target Pump subject
// ("this", "target creature", "equipped creature").
func isPluralSubject(subject string) bool {
	words := strings.Fields(subject)
	for _, w := range words {
		if strings.HasSuffix(w, "creatures") || strings.HasSuffix(w, "permanents") {
			return true
		}
	}
	return false
}

// parseIfClause recognizes "if <predicate>, <effects>" and "if it was
// a <filter>, <effects>" shapes, producing a Conditional/IfResult node
// (§4.5, §4.7).
var ifPattern = regexp.MustCompile(`^if (it was(?:n't| not)? (?:a|an) ([a-z ]+)), (.+)$`)
var ifDidPattern = regexp.MustCompile(`^if (you|they|that player) (did|didn't|do|don't),? (.+)$`)

func parseIfClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if m := ifPattern.FindStringSubmatch(sentence); m != nil {
		tag, err := ctx.resolveIt()
		if err != nil {
			return nil, true, err
		}
		inner, err := parseVerbFirstChain(m[3], ctx)
		if err != nil {
			return nil, true, err
		}
		filter := strings.TrimSpace(m[2])
		return []EffectAst{{
			Kind:          EffConditional,
			TaggedMatches: tag,
			Filter:        ObjectFilter{Subtypes: []string{filter}},
			Nested:        inner,
		}}, true, nil
	}
	if m := ifDidPattern.FindStringSubmatch(sentence); m != nil {
		if !ctx.hasLastEffectID {
			return nil, true, newParseError("if clause without a preceding tagged effect", sentence)
		}
		pred := PredDid
		if strings.Contains(m[2], "n't") {
			pred = PredDidNot
		}
		inner, err := parseVerbFirstChain(m[3], ctx)
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffIfResult, Predicate: pred, Nested: inner}}, true, nil
	}
	return nil, false, nil
}

var mayPattern = regexp.MustCompile(`^(you|target player|that player) may (.+)$`)
var mayByTaggedControllerPattern = regexp.MustCompile(`^its controller may (.+)$`)

// parseMayClause recognizes "<subject> may <effects>" (§4.5) and "its
// controller may <effects>" (§4.5's MayByTaggedController), the
// controller-of-a-bound-tag counterpart used after a token/object is
// created or tagged earlier in the same ability.
func parseMayClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if m := mayByTaggedControllerPattern.FindStringSubmatch(sentence); m != nil {
		tag, err := ctx.resolveIt()
		if err != nil {
			return nil, true, err
		}
		inner, err := parseVerbFirstChain(m[1], ctx)
		if err != nil {
			return nil, true, err
		}
		id := ctx.allocEffectID()
		ctx.setLastEffectID(id)
		return []EffectAst{{Kind: EffMayByTaggedController, ReferenceTag: tag, Nested: inner}}, true, nil
	}

	m := mayPattern.FindStringSubmatch(sentence)
	if m == nil {
		return nil, false, nil
	}
	inner, err := parseVerbFirstChain(m[2], ctx)
	if err != nil {
		return nil, true, err
	}
	id := ctx.allocEffectID()
	ctx.setLastEffectID(id)
	return []EffectAst{{Kind: EffMay, Nested: inner}}, true, nil
}

// verbLexicon is the closed set of recognized leading verbs (§4.5).
var verbLexicon = map[string]func(subject string, rest []string, ctx *CompileContext) (EffectAst, error){
	"draw":        parseDraw,
	"deal":        parseDealDamage,
	"destroy":     parseDestroy,
	"exile":       parseExile,
	"sacrifice":   parseSacrificeEffect,
	"tap":         parseTap,
	"untap":       parseUntap,
	"create":      parseCreateToken,
	"gain":        parseGainLifeOrControl,
	"lose":        parseLoseLife,
	"scry":        parseScry,
	"surveil":     parseSurveil,
	"discard":     parseDiscard,
	"mill":        parseMill,
	"counter":     parseCounterSpellEffect,
	"put":         parsePutDispatch,
	"return":      parseReturnDispatch,
	"reveal":      parseRevealEffect,
	"look":        parseLookAtEffect,
	"proliferate": parseProliferateEffect,
	"investigate": parseInvestigateEffect,
	"regenerate":  parseRegenerateEffect,
	"transform":   parseTransformEffect,
	"skip":        parseSkipEffect,
	"add":         parseAddMana,
	"control":     parseControlPlayer,
	"take":        parseTakeExtraTurn,
	"search":      parseSearchLibrary,
	"monstrosity": parseMonstrosity,
	"earthbend":   parseEarthbend,
	"move":        parseMoveAllCounters,
	"prevent":     parsePreventEffect,
	"play":        parsePlayFromGraveyard,
	"enchant":     parseEnchantEffect,
	"set":         parseSetLifeTotal,
	"remove":      parseRemoveCounters,
	"get":         parseGetPoisonOrEnergy,
}

var subjectWords = map[string]PlayerRef{
	"you":             {Kind: PlayerYou},
	"target player":   {Kind: PlayerTarget},
	"defending player": {Kind: PlayerDefending},
	"that player":     {Kind: PlayerThat},
}

// parseVerbFirstChain scans for the first recognized verb; everything
// before it is the subject, everything after is verb-specific argument
// tokens (§4.5). "This" as subject is the implicit default used by most
// card text ("this creature attacks" context already consumed by the
// trigger clause); a bare effect sentence with no explicit subject is
// implicitly "you" performing the action (the common case, e.g. "Draw a
// card.").
func parseVerbFirstChain(sentence string, ctx *CompileContext) ([]EffectAst, error) {
	words := strings.Fields(sentence)
	for i, w := range words {
		w = strings.TrimRight(w, ",")
		fn, ok := verbLexicon[w]
		if !ok {
			// Oracle text conjugates the verb to its subject ("Draw a
			// card" vs. "its controller draws a card"); the lexicon only
			// keys the base form, so fall back to it on a trailing "s".
			if base := strings.TrimSuffix(w, "s"); base != w {
				fn, ok = verbLexicon[base]
			}
		}
		if ok {
			subject := strings.Join(words[:i], " ")
			eff, err := fn(subject, words[i+1:], ctx)
			if err != nil {
				return nil, err
			}
			return []EffectAst{eff}, nil
		}
	}
	return nil, newUnsupportedLine(sentence)
}

func parseDraw(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	id := ctx.allocEffectID()
	ctx.setLastEffectID(id)
	return EffectAst{Kind: EffDraw, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

func parseDealDamage(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	// "deal N damage to <target>"
	joined := strings.Join(rest, " ")
	joined = strings.TrimPrefix(joined, "damage ")
	re := regexp.MustCompile(`^(\d+) damage to (.+)$`)
	m := re.FindStringSubmatch(strings.Join(rest, " "))
	if m == nil {
		return EffectAst{}, newParseError("malformed damage clause", joined)
	}
	n, _ := strconv.Atoi(m[1])
	target, err := parseTargetPhrase(m[2], ctx)
	if err != nil {
		return EffectAst{}, err
	}
	id := ctx.allocEffectID()
	ctx.setLastEffectID(id)
	kind := EffDealDamage
	if isBulkTargetPhrase(m[2]) {
		kind = EffDealDamageEach
	}
	return EffectAst{Kind: kind, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Target: target}, nil
}

// isBulkTargetPhrase distinguishes a bulk target phrase ("all creatures",
// "each creature", "all permanents you control") from a single-object
// phrase ("target creature", "it"), generalizing isPluralSubject's
// suffix check with the singular "each <noun>" shape.
func isBulkTargetPhrase(phrase string) bool {
	lower := strings.ToLower(strings.TrimSpace(phrase))
	if strings.HasPrefix(lower, "all ") || strings.HasPrefix(lower, "each ") {
		return true
	}
	return isPluralSubject(phrase)
}

func parseDestroy(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if isBulkTargetPhrase(joined) {
		return EffectAst{Kind: EffDestroyAll, Target: target}, nil
	}
	id := ctx.allocEffectID()
	tag := ctx.freshTag("destroyed")
	ctx.bindObjectTag(tag)
	ctx.setLastEffectID(id)
	return EffectAst{Kind: EffDestroy, Target: target, BindTag: tag}, nil
}

// exileAtEndOfCombatSuffixes marks the printed phrasing for exiling a
// just-created token at the end of combat (§4.5's
// ExileThatTokenAtEndOfCombat), always phrased against a pronoun
// referring back to a token CreateTokenWithMods/CreateTokenCopy bound.
var exileAtEndOfCombatSuffixes = []string{
	"at the beginning of the next end step",
	"at the end of combat",
}

func parseExile(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	for _, suffix := range exileAtEndOfCombatSuffixes {
		if strings.HasSuffix(joined, suffix) {
			targetPhrase := strings.TrimSpace(strings.TrimSuffix(joined, suffix))
			target, err := parseTargetPhrase(targetPhrase, ctx)
			if err != nil {
				return EffectAst{}, err
			}
			return EffectAst{Kind: EffExileThatTokenAtEndOfCombat, Target: target}, nil
		}
	}
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if isBulkTargetPhrase(joined) {
		return EffectAst{Kind: EffExileAll, Target: target}, nil
	}
	id := ctx.allocEffectID()
	tag := ctx.freshTag("exiled")
	ctx.bindObjectTag(tag)
	ctx.setLastEffectID(id)
	return EffectAst{Kind: EffExile, Target: target, BindTag: tag}, nil
}

func parseSacrificeEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if isBulkTargetPhrase(joined) {
		return EffectAst{Kind: EffSacrificeAll, Target: target}, nil
	}
	return EffectAst{Kind: EffSacrifice, Target: target}, nil
}

func parseTap(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffTap, Target: target}, nil
}

func parseUntap(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if isBulkTargetPhrase(joined) {
		return EffectAst{Kind: EffUntapAll, Target: target}, nil
	}
	return EffectAst{Kind: EffUntap, Target: target}, nil
}

func parseGainLife(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	// "gain N life"
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffGainLife, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

func parseLoseLife(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if strings.Join(rest, " ") == "the game" {
		return EffectAst{Kind: EffLoseGame, Player: player}, nil
	}
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffLoseLife, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

func parseScry(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffScry, Amount: ValueExpr{Kind: ValLiteral, Literal: n}}, nil
}

func parseSurveil(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffSurveil, Amount: ValueExpr{Kind: ValLiteral, Literal: n}}, nil
}

func parseDiscard(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if strings.HasPrefix(joined, "your hand") {
		return EffectAst{Kind: EffDiscardHand, Player: player}, nil
	}
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffDiscard, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

func parseMill(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffMill, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

func parseCounterSpellEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffDestroy, Target: target, Restriction: "counter-spell"}, nil
}

// parsePutDispatch shares the "put" verb slot between PutCounters ("put
// N <type> counter(s) on <target>") and PutIntoHand ("put it into your
// hand"/"put it onto the battlefield"), distinguishing on whether the
// clause names a counter.
func parsePutDispatch(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	if strings.Contains(strings.Join(rest, " "), "counter") {
		return parsePutCounters(subject, rest, ctx)
	}
	return parsePutIntoHand(subject, rest, ctx)
}

func parsePutCounters(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	// "put N <type> counter(s) on <target>"
	if len(rest) < 4 {
		return EffectAst{}, newParseError("malformed counter clause", strings.Join(rest, " "))
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return EffectAst{}, newParseError("expected a counter count", rest[0])
	}
	idx := 1
	var typeWords []string
	for idx < len(rest) && !strings.HasPrefix(rest[idx], "counter") {
		typeWords = append(typeWords, rest[idx])
		idx++
	}
	idx++ // skip counter(s)
	if idx < len(rest) && rest[idx] == "on" {
		idx++
	}
	target, err := parseTargetPhrase(strings.Join(rest[idx:], " "), ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffPutCounters, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, CounterType: strings.Join(typeWords, " "), Target: target}, nil
}

func parseReturnToHand(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(joined, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffReturnToHand, Target: target}, nil
}

// createTokenCount reads the leading article/number of a "create N ...
// token(s)" clause and returns the count plus the remaining words, which
// name the token itself.
func createTokenCount(rest []string) (int, []string) {
	if len(rest) == 0 {
		return 1, rest
	}
	if rest[0] == "a" || rest[0] == "an" {
		return 1, rest[1:]
	}
	if n, ok := wordToCount[rest[0]]; ok {
		return n, rest[1:]
	}
	if n, err := strconv.Atoi(rest[0]); err == nil {
		return n, rest[1:]
	}
	return 1, rest
}

// parseCreateToken recognizes "create N <token description> token(s)
// [tapped][and/or attacking]" (§4.5, §4.8). The token description itself
// is resolved by resolveTokenDefinition against the fixed token table.
func parseCreateToken(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, rest := createTokenCount(rest)

	tapped := false
	attacking := false
trailer:
	for len(rest) > 0 {
		switch rest[len(rest)-1] {
		case "attacking":
			attacking = true
			rest = rest[:len(rest)-1]
		case "and", "that's":
			rest = rest[:len(rest)-1]
		case "tapped":
			tapped = true
			rest = rest[:len(rest)-1]
		default:
			break trailer
		}
	}

	desc := strings.Join(rest, " ")
	desc = strings.TrimSuffix(desc, " tokens")
	desc = strings.TrimSuffix(desc, " token")

	if strings.Contains(desc, "copy of") {
		return parseCreateTokenCopy(subject, desc, ctx)
	}

	def, err := resolveTokenDefinition(desc)
	if err != nil {
		return EffectAst{}, err
	}

	// Resolve the subject (e.g. "its controller") against whatever tag is
	// already bound before minting this effect's own tag, so a "controller
	// of X" reference doesn't resolve to the token this effect is still
	// in the middle of creating.
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}

	id := ctx.allocEffectID()
	tag := ctx.freshTag("created")
	ctx.bindObjectTag(tag)
	ctx.setLastEffectID(id)

	return EffectAst{
		Kind:              EffCreateTokenWithMods,
		Count:             n,
		TokenName:         def.Name,
		TokenTapped:       tapped,
		TokenAttacking:    attacking,
		CreateTokenPlayer: player,
		BindTag:           tag,
	}, nil
}

func parseProliferateEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	return EffectAst{Kind: EffProliferate}, nil
}

func parseInvestigateEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	return EffectAst{Kind: EffInvestigate}, nil
}

func parseRegenerateEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	return EffectAst{Kind: EffRegenerate, Target: Target{Kind: TargetSource}}, nil
}

func parseTransformEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	return EffectAst{Kind: EffTransform, Target: Target{Kind: TargetSource}}, nil
}

// wordToCount maps the small set of spelled-out counts oracle text uses in
// mana/effect clauses ("one", "two", "three") to their numeric value.
var wordToCount = map[string]int{"one": 1, "two": 2, "three": 3, "four": 4, "five": 5}

// parseAddMana recognizes the AddMana effect family (§4.5): fixed mana
// symbols ("add {g}"), "add N mana of any color", "add N mana of any one
// color", the commander-identity variant, and the imprinted-colors variant
// this repo's value model supplements from
// original_source/cards/definitions/everflowing_chalice.rs (§12 of
// SPEC_FULL.md).
func parseAddMana(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")

	if strings.Contains(joined, "commander's color identity") {
		return EffectAst{Kind: EffAddManaCommanderIdentity}, nil
	}
	if strings.Contains(joined, "imprinted") || strings.Contains(joined, "exiled card") {
		return EffectAst{Kind: EffAddManaImprintedColors}, nil
	}
	if strings.Contains(joined, "any one color") {
		n := manaCountPrefix(rest, 1)
		return EffectAst{Kind: EffAddManaAnyOneColor, Count: n}, nil
	}
	if strings.Contains(joined, "any color") {
		n := manaCountPrefix(rest, 1)
		return EffectAst{Kind: EffAddManaAnyColor, Count: n}, nil
	}

	mc := card.ParseManaCost(joined)
	if len(mc.Pips) == 0 {
		return EffectAst{}, newParseError("unrecognized mana clause", joined)
	}
	return EffectAst{Kind: EffAddMana, ManaCost: mc}, nil
}

// manaCountPrefix reads the leading count word/digit of an "add N mana of
// any [one] color" clause.
func manaCountPrefix(rest []string, dflt int) int {
	if len(rest) == 0 {
		return dflt
	}
	if n, ok := wordToCount[rest[0]]; ok {
		return n
	}
	if n, err := strconv.Atoi(rest[0]); err == nil {
		return n
	}
	return dflt
}

func parseSkipEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	if strings.Contains(joined, "draw") {
		return EffectAst{Kind: EffSkipDrawStep}, nil
	}
	return EffectAst{Kind: EffSkipTurn}, nil
}

func leadingCount(rest []string, dflt int) (int, error) {
	if len(rest) == 0 {
		return dflt, nil
	}
	word := rest[0]
	if word == "a" || word == "an" {
		return 1, nil
	}
	if word == "three" {
		return 3, nil
	}
	if word == "two" {
		return 2, nil
	}
	if n, err := strconv.Atoi(word); err == nil {
		return n, nil
	}
	return dflt, nil
}

// subjectPlayerRef resolves a verb's subject phrase to a PlayerRef.
// "its controller" is resolved dynamically against ctx's last bound
// object tag rather than looked up in subjectWords, since it names a
// different player on every card. It surfaces
// ctx.resolveItsController's error rather than defaulting to "you",
// per §4.7/§9's "no silent fallbacks" invariant: an unresolvable "its
// controller" is a parse error, not a misattribution to the caster.
func subjectPlayerRef(subject string, ctx *CompileContext) (PlayerRef, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return PlayerRef{Kind: PlayerYou}, nil
	}
	if subject == "its controller" {
		return ctx.resolveItsController()
	}
	if ref, ok := subjectWords[subject]; ok {
		return ref, nil
	}
	return PlayerRef{Kind: PlayerYou}, nil
}

// parseTargetPhrase normalizes a target phrase to one of Tagged(tag)
// ("it"/"them", and "equipped creature"/"enchanted creature" as tag
// "equipped"), Source ("this ..."), AnyTarget (phrases naming target
// permanent/creature/player or "any target") or Object(filter) for
// everything else (§4.5). It never produces the Spell or Player kinds,
// and it does not recognize "up to N"/"any number of"/"another" prefixes
// or set UpTo/AnyNumber/AnotherOnly. It surfaces
// ctx.resolveIt's error rather than swallowing it, per §3/§4.7's
// invariant that an unresolvable "it"/"them" is a parse error, never a
// silent fallback.
func parseTargetPhrase(phrase string, ctx *CompileContext) (Target, error) {
	phrase = strings.TrimSpace(phrase)
	lower := strings.ToLower(phrase)

	switch {
	case lower == "it" || lower == "them":
		tag, err := ctx.resolveIt()
		if err != nil {
			return Target{}, err
		}
		return Target{Kind: TargetTagged, Tag: tag}, nil
	case lower == "this" || strings.HasPrefix(lower, "this "):
		return Target{Kind: TargetSource}, nil
	case strings.HasPrefix(lower, "equipped creature"), strings.HasPrefix(lower, "enchanted creature"):
		return Target{Kind: TargetTagged, Tag: "equipped"}, nil
	case strings.Contains(lower, "target permanent"), strings.Contains(lower, "target creature"),
		strings.Contains(lower, "target player"), strings.Contains(lower, "any target"):
		return Target{Kind: TargetAny, Filter: parseObjectFilterPhrase(lower)}, nil
	}

	filter := parseObjectFilterPhrase(lower)
	return Target{Kind: TargetObject, Filter: filter}, nil
}
