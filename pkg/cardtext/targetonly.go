package cardtext

import "regexp"

// bareTargetPattern recognizes a sentence that is nothing but a target
// phrase, with no verb at all (§4.5's TargetOnly: a standalone "Target
// creature." line, printed ahead of a separate sentence that references
// it, e.g. a choose-mode ability's mode list). It only fires on the
// narrow shapes "target <words>", "any target", "it", "them" and "this",
// so a line like "Creatures you control get +1/+1" (no verb yet found,
// but not a bare target) never
// falls through to here by accident — parseOneSentence only reaches
// this parser after every other clause shape has declined the sentence.
var bareTargetPattern = regexp.MustCompile(`^(target [a-z ]+|any target|it|them|this)$`)

// parseTargetOnlyClause recognizes a standalone target phrase sentence
// and binds a fresh tag for later pronoun resolution, the same way
// parseDestroy/parseExile bind a tag for the object they acted on.
func parseTargetOnlyClause(sentence string, ctx *CompileContext) ([]EffectAst, bool, error) {
	if !bareTargetPattern.MatchString(sentence) {
		return nil, false, nil
	}
	target, err := parseTargetPhrase(sentence, ctx)
	if err != nil {
		return nil, true, err
	}
	tag := ctx.freshTag("targeted")
	ctx.bindObjectTag(tag)
	return []EffectAst{{Kind: EffTargetOnly, Target: target, BindTag: tag}}, true, nil
}
