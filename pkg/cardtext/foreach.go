package cardtext

import (
	"regexp"
	"strings"
)

// parseForEachClause recognizes the ForEach*/per-player sentence family
// (§4.5, §9's "ForEachOpponent/ForEachPlayer set iterated_player=true
// while compiling their body"): "each opponent <effects>", "each player
// <effects>", the "doesn't" variant, and the vote-tagged variant.
func parseForEachClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if m := forEachOpponentDoesNotPattern.FindStringSubmatch(sentence); m != nil {
		var inner []EffectAst
		var err error
		ctx.withIteration(func() {
			inner, err = parseVerbFirstChain(m[2], ctx)
		})
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffForEachOpponentDoesNot, Restriction: strings.TrimSpace(m[1]), Nested: inner}}, true, nil
	}
	if m := forEachTaggedPlayerPattern.FindStringSubmatch(sentence); m != nil {
		var inner []EffectAst
		var err error
		ctx.withIteration(func() {
			inner, err = parseVerbFirstChain(m[2], ctx)
		})
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffForEachTaggedPlayer, ReferenceTag: strings.TrimSpace(m[1]), Nested: inner}}, true, nil
	}
	if m := forEachOpponentPattern.FindStringSubmatch(sentence); m != nil {
		var inner []EffectAst
		var err error
		ctx.withIteration(func() {
			inner, err = parseVerbFirstChain(m[1], ctx)
		})
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffForEachOpponent, Nested: inner}}, true, nil
	}
	if m := forEachPlayerPattern.FindStringSubmatch(sentence); m != nil {
		var inner []EffectAst
		var err error
		ctx.withIteration(func() {
			inner, err = parseVerbFirstChain(m[1], ctx)
		})
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffForEachPlayer, Nested: inner}}, true, nil
	}
	return nil, false, nil
}

var (
	forEachOpponentDoesNotPattern = regexp.MustCompile(`^each opponent who (?:doesn't|does not) (.+?), (.+)$`)
	forEachTaggedPlayerPattern    = regexp.MustCompile(`^each player who voted for (.+?), (.+)$`)
	forEachOpponentPattern        = regexp.MustCompile(`^each opponent (.+)$`)
	forEachPlayerPattern          = regexp.MustCompile(`^each player (.+)$`)
)
