package cardtext

import (
	"strconv"
	"strings"
)

// parseSetLifeTotal recognizes "set your life total to N" (§4.5's
// SetLifeTotal).
func parseSetLifeTotal(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	idx := strings.LastIndex(joined, " to ")
	if idx < 0 {
		return EffectAst{}, newParseError("malformed set-life clause", joined)
	}
	ownerPhrase := strings.TrimSuffix(strings.TrimSpace(joined[:idx]), "life total")
	ownerPhrase = strings.TrimSuffix(strings.TrimSpace(ownerPhrase), "'s")
	player, err := subjectPlayerRef(strings.TrimSpace(ownerPhrase), ctx)
	if err != nil {
		return EffectAst{}, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(joined[idx+len(" to "):]))
	if err != nil {
		return EffectAst{}, newParseError("expected a life total", joined)
	}
	return EffectAst{Kind: EffSetLifeTotal, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
}

// parseRemoveCounters recognizes "remove up to N <type> counters from
// <target>" (§4.5's RemoveUpToAnyCounters).
func parseRemoveCounters(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	allowZero := false
	if len(rest) >= 2 && rest[0] == "up" && rest[1] == "to" {
		allowZero = true
		rest = rest[2:]
	}
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	if len(rest) > 0 {
		rest = rest[1:]
	}
	idx := 0
	var typeWords []string
	for idx < len(rest) && !strings.HasPrefix(rest[idx], "counter") {
		typeWords = append(typeWords, rest[idx])
		idx++
	}
	idx++
	if idx < len(rest) && rest[idx] == "from" {
		idx++
	}
	target, err := parseTargetPhrase(strings.Join(rest[idx:], " "), ctx)
	if err != nil {
		return EffectAst{}, err
	}
	return EffectAst{
		Kind:        EffRemoveUpToAnyCounters,
		Amount:      ValueExpr{Kind: ValLiteral, Literal: n},
		AllowZero:   allowZero,
		CounterType: strings.Join(typeWords, " "),
		Target:      target,
	}, nil
}

// parseGetPoisonOrEnergy shares the "get" verb slot between poison and
// energy counters (§4.5's PoisonCounters/EnergyCounters): "you get a
// poison counter", "you get N energy counters".
func parseGetPoisonOrEnergy(subject string, rest []string, ctx *CompileContext) (EffectAst, error) {
	joined := strings.Join(rest, " ")
	player, err := subjectPlayerRef(subject, ctx)
	if err != nil {
		return EffectAst{}, err
	}
	n, err := leadingCount(rest, 1)
	if err != nil {
		return EffectAst{}, err
	}
	switch {
	case strings.Contains(joined, "poison"):
		return EffectAst{Kind: EffPoisonCounters, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
	case strings.Contains(joined, "energy"):
		return EffectAst{Kind: EffEnergyCounters, Amount: ValueExpr{Kind: ValLiteral, Literal: n}, Player: player}, nil
	}
	return EffectAst{}, newParseError("unrecognized get clause", joined)
}
