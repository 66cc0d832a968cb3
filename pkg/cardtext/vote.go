package cardtext

import (
	"regexp"
	"strings"
)

// parseVotePrelude recognizes the vote-mechanic sentence family (§4.5,
// §12's worked example from
// original_source/tivit_seller_of_secrets.rs): "each player votes for A
// or B", "for each A vote, <effects>", and "you may vote an additional
// time". VoteStart/VoteOption/VoteExtra only compile together; each
// option's effect body is parsed inside ctx.withIteration, so pronoun
// bindings made by one option do not leak into the next (§4.7).
var voteStartPattern = regexp.MustCompile(`^each player votes for (.+) or (.+)$`)
var voteOptionPattern = regexp.MustCompile(`^for each (.+) vote, (.+)$`)
var voteExtraPattern = regexp.MustCompile(`^(you|each player) may vote an additional time$`)

func parseVotePrelude(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if m := voteStartPattern.FindStringSubmatch(sentence); m != nil {
		return []EffectAst{{Kind: EffVoteStart, VoteOption: m[1] + "|" + m[2]}}, true, nil
	}
	if m := voteOptionPattern.FindStringSubmatch(sentence); m != nil {
		var inner []EffectAst
		var err error
		ctx.withIteration(func() {
			inner, err = parseVerbFirstChain(m[2], ctx)
		})
		if err != nil {
			return nil, true, err
		}
		return []EffectAst{{Kind: EffVoteOption, VoteOption: strings.TrimSpace(m[1]), Nested: inner}}, true, nil
	}
	if voteExtraPattern.MatchString(sentence) {
		return []EffectAst{{Kind: EffVoteExtra, Count: 1, Optional: true}}, true, nil
	}
	return nil, false, nil
}
