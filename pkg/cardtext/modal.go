package cardtext

import "strings"

// EffectMode is one accumulated bullet of a modal ability.
type EffectMode struct {
	Text    string
	Effects []EffectAst
}

// pendingModal accumulates EffectModes in the line loop, a small state
// machine rather than recursive grammar (§9's "modal lines" guidance).
// The header line opens it (possibly carrying a trigger clause);
// subsequent bullet lines accumulate modes; the next non-bullet line or
// end of text closes it into a runtime choice effect.
type pendingModal struct {
	open    bool
	trigger *TriggerSpec
	modes   []EffectMode
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"•", "*", "-"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"•", "*", "-"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		}
	}
	return trimmed
}

// close finalizes the pending modal into a single choice LineAst, or
// returns ok=false if no modal was open.
func (p *pendingModal) close() (LineAst, bool) {
	if !p.open || len(p.modes) == 0 {
		p.reset()
		return LineAst{}, false
	}
	var effects []EffectAst
	for _, mode := range p.modes {
		effects = append(effects, EffectAst{Kind: EffChooseObjects, SourceText: mode.Text, Nested: mode.Effects})
	}
	result := LineAst{Kind: LineStatement, Effects: effects}
	if p.trigger != nil {
		result.Kind = LineTriggered
		result.Trigger = p.trigger
	}
	p.reset()
	return result, true
}

func (p *pendingModal) reset() {
	p.open = false
	p.trigger = nil
	p.modes = nil
}
