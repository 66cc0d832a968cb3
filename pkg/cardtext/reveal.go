package cardtext

import "strings"

// parseRevealEffect recognizes the Reveal family (§4.5): "reveal the top
// N cards of your library" and "reveal your hand". Sentences starting
// with "look" go to parseLookAtEffect, which only recognizes hands, so
// "look at the top N cards of your library" is not recognized.
func parseRevealEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	if strings.HasPrefix(joined, "your hand") || strings.HasPrefix(joined, "their hand") {
		return EffectAst{Kind: EffRevealHand, Player: player}, nil
	}
	if strings.Contains(joined, "top") && strings.Contains(joined, "library") {
		n := 1
		for _, w := range rest {
			if c, ok := wordToCount[w]; ok {
				n = c
				break
			}
		}
		return EffectAst{Kind: EffRevealTop, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
	}
	return EffectAst{}, newParseError("unrecognized reveal clause", joined)
}

// parseLookAtEffect recognizes "look at target player's hand" (§4.5's
// LookAtHand).
func parseLookAtEffect(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	if !strings.HasSuffix(joined, "hand") && !strings.HasSuffix(joined, "hand.") {
		return EffectAst{}, newParseError("unrecognized look clause", joined)
	}
	ownerPhrase := strings.TrimSuffix(strings.TrimSuffix(strings.TrimPrefix(joined, "at "), "'s hand"), "hand")
	player, err := subjectPlayerRef(strings.TrimSpace(ownerPhrase), ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{Kind: EffLookAtHand, Player: player}, nil
}

// parsePutIntoHand recognizes "put it into your hand" and "put it onto
// the battlefield", the landing-zone half of SearchLibrary's oracle
// phrasing when printed as its own sentence (§4.5's PutIntoHand).
func parsePutIntoHand(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	target, err := parseTargetPhrase(strings.Fields(joined)[0], ctx)
	if err != nil {
		return EffectAst{}, err
	}
	destination := "hand"
	switch {
	case strings.Contains(joined, "battlefield"):
		destination = "battlefield"
	case strings.Contains(joined, "graveyard"):
		destination = "graveyard"
	case strings.Contains(joined, "library"):
		destination = "library"
	}
	return EffectAst{Kind: EffPutIntoHand, Target: target, Destination: destination}, nil
}

// parseReturnAllToHand recognizes "return all creature cards from your
// graveyard to your hand"/"return all <filter> cards to their owners'
// hands" (§4.5's ReturnAllToHand).
func parseReturnAllToHand(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	idx := strings.Index(joined, " to ")
	filterPhrase := joined
	if idx >= 0 {
		filterPhrase = joined[:idx]
	}
	return EffectAst{Kind: EffReturnAllToHand, Filter: parseObjectFilterPhrase(strings.ToLower(filterPhrase))}, nil
}

// parseReturnDispatch handles the "return" verb slot: "return all ..."
// goes to parseReturnAllToHand, "return <target> to the battlefield
// [tapped]" yields §4.5's ReturnToBattlefield, and anything else goes to
// parseReturnToHand.
func parseReturnDispatch(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	if strings.HasPrefix(joined, "all ") {
		return parseReturnAllToHand(subject, rest, ctx)
	}
	if strings.Contains(joined, "battlefield") {
		idx := strings.Index(joined, " to the battlefield")
		target, err := parseTargetPhrase(joined[:idx], ctx)
		if err != nil {
			return EffectAst{}, err
		}
		tapped := strings.Contains(joined, "tapped")
		return EffectAst{Kind: EffReturnToBattlefield, Target: target, TokenTapped: tapped}, nil
	}
	return parseReturnToHand(subject, rest, ctx)
}
