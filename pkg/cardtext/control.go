package cardtext

import (
	"regexp"
	"strings"
)

// parseGainLifeOrControl dispatches "gain" clauses between GainLife (the
// common case) and GainControl ("gain control of <target> [duration]"),
// since both are printed with the same leading verb (§4.5's GainControl
// family shares parseGainLife's verb slot with GainLife).
func parseGainLifeOrControl(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	if strings.HasPrefix(joined, "control of ") {
		return parseGainControl(subject, strings.TrimPrefix(joined, "control of "), ctx)
	}
	return parseGainLife(subject, rest, ctx)
}

var controlDurationPattern = regexp.MustCompile(`^(.+?)(?: (for as long as you control [a-z ]+|for the rest of the game|until end of turn))?$`)

func parseGainControl(subject, rest string, ctx *CompileContext) (EffectAst, error) {
	m := controlDurationPattern.FindStringSubmatch(rest)
	if m == nil {
		return EffectAst{}, newParseError("malformed gain control clause", rest)
	}
	target, err := parseTargetPhrase(m[1], ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffGainControl, Target: target, ControlDuration: m[2]}, nil
}

// parseControlPlayer recognizes "control target player during their next
// turn" (§4.5's ControlPlayer).
func parseControlPlayer(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	idx := strings.Index(joined, " during ")
	targetPhrase := joined
	duration := ""
	if idx >= 0 {
		targetPhrase = joined[:idx]
		duration = strings.TrimSpace(joined[idx+len(" during "):])
	}
	target, err := parseTargetPhrase(targetPhrase, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffControlPlayer, Target: target, ControlDuration: duration}, nil
}

// parseTakeExtraTurn recognizes "take an extra turn after this one"
// (§4.5's ExtraTurnAfterTurn).
func parseTakeExtraTurn(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	if !strings.Contains(joined, "extra turn") {
		return EffectAst{}, newParseError("unrecognized take clause", joined)
	}
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffExtraTurnAfterTurn, Player: player}, nil
}

// parseSearchLibrary recognizes "search your library for a <filter> [and
// reveal it], [then] put it into your hand[/onto the battlefield/library,
// shuffle]" (§4.5's SearchLibrary).
func parseSearchLibrary(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	joined = strings.TrimPrefix(joined, "your library for ")
	joined = strings.TrimPrefix(joined, "library for ")

	reveal := strings.Contains(joined, "reveal")
	shuffle := strings.Contains(joined, "shuffle")

	destination := "hand"
	switch {
	case strings.Contains(joined, "onto the battlefield"):
		destination = "battlefield"
	case strings.Contains(joined, "into your graveyard"):
		destination = "graveyard"
	}

	filterPhrase := joined
	if idx := strings.Index(joined, ", "); idx >= 0 {
		filterPhrase = joined[:idx]
	}
	filter := parseObjectFilterPhrase(strings.ToLower(filterPhrase))

	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}

	return EffectAst{
		Kind:        EffSearchLibrary,
		Filter:      filter,
		Destination: destination,
		Reveal:      reveal,
		Shuffle:     shuffle,
		Player:      player,
	}, nil
}

// parseCreateTokenCopy recognizes "create a token that's a copy of
// this permanent/creature" (CreateTokenCopyFromSource) and "create a
// token that's a copy of <target>" (CreateTokenCopy), reached from
// parseCreateToken once it notices the description names a copy
// instead of a fixed token definition (§4.5).
func parseCreateTokenCopy(subject, desc string, ctx *CompileContext) (EffectAst, error) {
	idx := strings.Index(desc, "copy of")
	subjectOfCopy := strings.TrimSpace(desc[idx+len("copy of"):])

	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}

	id := ctx.allocEffectID()
	tag := ctx.freshTag("created")
	ctx.bindObjectTag(tag)
	ctx.setLastEffectID(id)

	if subjectOfCopy == "this permanent" || subjectOfCopy == "this creature" || subjectOfCopy == "this" {
		return EffectAst{Kind: EffCreateTokenCopyFromSource, CreateTokenPlayer: player, BindTag: tag}, nil
	}
	target, err := parseTargetPhrase(subjectOfCopy, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffCreateTokenCopy, Target: target, CreateTokenPlayer: player, BindTag: tag}, nil
}

// parseEnchantEffect recognizes an Aura's "Enchant <filter>" line (§4.5's
// Enchant), printed as its own ability line rather than inside a
// sentence, naming what the Aura can legally target.
func parseEnchantEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	filter := parseObjectFilterPhrase(strings.ToLower(strings.Join(rest, " ")))
	return EffectAst{Kind: EffEnchant, Filter: filter}, nil
}

// parseMonstrosity recognizes "monstrosity N" (§4.5's Monstrosity).
func parseMonstrosity(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffMonstrosity, Amount: ValueExpr{Kind: ValLiteral, Literal: n}}, nil
}

// parseEarthbend recognizes "earthbend N" (§4.5's Earthbend).
func parseEarthbend(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffEarthbend, Amount: ValueExpr{Kind: ValLiteral, Literal: n}}, nil
}

// parseMoveAllCounters recognizes "move all <type> counters from <target>
// onto <target>" (§4.5's MoveAllCounters).
var moveCountersPattern = regexp.MustCompile(`^all ([a-z ]+?) counters from (.+) onto (.+)$`)

func parseMoveAllCounters(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	m := moveCountersPattern.FindStringSubmatch(joined)
	if m == nil {
		return EffectAst{}, newParseError("malformed move-counters clause", joined)
	}
	// Only the destination is kept as this effect's Target; the source is
	// implicit in practice (always "it"/the tagged object this ability's
	// trigger already bound), matching how PutCounters only tracks a
	// single Target.
	target, err := parseTargetPhrase(m[3], ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffMoveAllCounters, CounterType: strings.TrimSpace(m[1]), Target: target}, nil
}
