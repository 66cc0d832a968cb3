package cardtext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// TestParseTextKeywordList covers a bare comma-separated keyword line with
// no oracle-text sentences.
func TestParseTextKeywordList(t *testing.T) {
	def, err := NewCardBuilder("Test Bear").
		CardTypes("Creature").
		ParseText("Flying, vigilance")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.Abilities) != 2 {
		t.Fatalf("len(Abilities) = %d; want 2", len(def.Abilities))
	}
	for _, a := range def.Abilities {
		if a.Kind != AbilityStatic || a.Static == nil {
			t.Errorf("ability %+v is not a static keyword", a)
		}
	}
	if def.Abilities[0].Static.Name != "Flying" {
		t.Errorf("Abilities[0].Static.Name = %q; want Flying", def.Abilities[0].Static.Name)
	}
	if def.Abilities[1].Static.Name != "Vigilance" {
		t.Errorf("Abilities[1].Static.Name = %q; want Vigilance", def.Abilities[1].Static.Name)
	}
}

// TestParseTextTriggeredDraw covers a single triggered ability on a
// permanent.
func TestParseTextTriggeredDraw(t *testing.T) {
	def, err := NewCardBuilder("Test Bear").
		CardTypes("Creature").
		ParseText("Whenever this creature attacks, draw a card.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.Abilities) != 1 {
		t.Fatalf("len(Abilities) = %d; want 1", len(def.Abilities))
	}
	ab := def.Abilities[0]
	if ab.Kind != AbilityTriggered {
		t.Fatalf("Kind = %v; want AbilityTriggered", ab.Kind)
	}
	if ab.Trigger == nil || ab.Trigger.Kind != TrigAttacks {
		t.Fatalf("Trigger = %+v; want TrigAttacks", ab.Trigger)
	}
	if len(ab.Effects) != 1 || ab.Effects[0].Ast.Kind != EffDraw {
		t.Fatalf("Effects = %+v; want a single Draw effect", ab.Effects)
	}
	if ab.Effects[0].Ast.Amount.Literal != 1 {
		t.Errorf("Amount.Literal = %d; want 1", ab.Effects[0].Ast.Amount.Literal)
	}
}

// TestParseTextActivatedPump covers an activated ability whose cost is a
// mana symbol but whose effect is a pump, not mana production — it must
// not be classified as a mana ability (CR 605.1a turns on the effect, not
// the cost).
func TestParseTextActivatedPump(t *testing.T) {
	def, err := NewCardBuilder("Test Bear").
		CardTypes("Creature").
		ParseText("{R}: This creature gets +1/+0 until end of turn.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.Abilities) != 1 {
		t.Fatalf("len(Abilities) = %d; want 1", len(def.Abilities))
	}
	ab := def.Abilities[0]
	if ab.Kind != AbilityActivated {
		t.Fatalf("Kind = %v; want AbilityActivated, not a mana ability", ab.Kind)
	}
	if len(ab.Cost.Components) == 0 {
		t.Fatalf("Cost.Components is empty; want a mana component")
	}
	if len(ab.Effects) != 1 || ab.Effects[0].Ast.Kind != EffPump {
		t.Fatalf("Effects = %+v; want a single Pump effect", ab.Effects)
	}
	eff := ab.Effects[0].Ast
	if eff.PowerMod != 1 || eff.ToughnessMod != 0 {
		t.Errorf("PowerMod/ToughnessMod = %d/%d; want 1/0", eff.PowerMod, eff.ToughnessMod)
	}
	if eff.Target.Kind != TargetSource {
		t.Errorf("Target.Kind = %v; want TargetSource ('this')", eff.Target.Kind)
	}
	if eff.Duration != "until end of turn" {
		t.Errorf("Duration = %q; want %q", eff.Duration, "until end of turn")
	}
}

// TestParseTextManaAbility covers the canonical mana ability shape, which
// must be classified as AbilityMana precisely because its only effect adds
// mana.
func TestParseTextManaAbility(t *testing.T) {
	def, err := NewCardBuilder("Test Rock").
		CardTypes("Artifact").
		ParseText("{T}: Add {G}.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.Abilities) != 1 {
		t.Fatalf("len(Abilities) = %d; want 1", len(def.Abilities))
	}
	ab := def.Abilities[0]
	if ab.Kind != AbilityMana {
		t.Fatalf("Kind = %v; want AbilityMana", ab.Kind)
	}
	if len(ab.Effects) != 1 || ab.Effects[0].Ast.Kind != EffAddMana {
		t.Fatalf("Effects = %+v; want a single AddMana effect", ab.Effects)
	}
	if len(ab.Effects[0].Ast.ManaCost.Pips) != 1 {
		t.Fatalf("ManaCost.Pips = %+v; want a single green pip", ab.Effects[0].Ast.ManaCost.Pips)
	}
}

// TestParseTextAdditionalCostAndSpellEffects covers a non-permanent spell
// with an additional cost and a following statement line, checking that
// the additional cost is isolated from the main spell-effect list.
func TestParseTextAdditionalCostAndSpellEffects(t *testing.T) {
	def, err := NewCardBuilder("Test Rite").
		CardTypes("Sorcery").
		ParseText("As an additional cost to cast this spell, sacrifice a creature.\nDraw three cards.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.CostEffects) != 1 || def.CostEffects[0].Ast.Kind != EffSacrifice {
		t.Fatalf("CostEffects = %+v; want a single Sacrifice effect", def.CostEffects)
	}
	if len(def.SpellEffects) != 1 || def.SpellEffects[0].Ast.Kind != EffDraw {
		t.Fatalf("SpellEffects = %+v; want a single Draw effect", def.SpellEffects)
	}
	if def.SpellEffects[0].Ast.Amount.Literal != 3 {
		t.Errorf("Amount.Literal = %d; want 3", def.SpellEffects[0].Ast.Amount.Literal)
	}
}

// TestParseTextPronounAndConditional covers "it"/"its controller"
// resolution across two sentences on one line.
func TestParseTextPronounAndConditional(t *testing.T) {
	def, err := NewCardBuilder("Test Bolt").
		CardTypes("Instant").
		ParseText("Destroy target permanent. If it was a land, its controller creates a Treasure token.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.SpellEffects) != 2 {
		t.Fatalf("len(SpellEffects) = %d; want 2", len(def.SpellEffects))
	}
	destroy := def.SpellEffects[0].Ast
	if destroy.Kind != EffDestroy {
		t.Fatalf("SpellEffects[0].Kind = %v; want EffDestroy", destroy.Kind)
	}
	if destroy.BindTag == "" {
		t.Fatalf("destroy effect bound no tag")
	}

	cond := def.SpellEffects[1].Ast
	if cond.Kind != EffConditional {
		t.Fatalf("SpellEffects[1].Kind = %v; want EffConditional", cond.Kind)
	}
	if cond.TaggedMatches != destroy.BindTag {
		t.Errorf("TaggedMatches = %q; want it to resolve to the destroy effect's tag %q", cond.TaggedMatches, destroy.BindTag)
	}
	if len(cond.Nested) != 1 || cond.Nested[0].Kind != EffCreateTokenWithMods {
		t.Fatalf("Nested = %+v; want a single CreateTokenWithMods effect", cond.Nested)
	}
	nested := cond.Nested[0]
	if nested.TokenName != "Treasure" {
		t.Errorf("TokenName = %q; want Treasure", nested.TokenName)
	}
	if nested.CreateTokenPlayer.Kind != PlayerControllerOfTag || nested.CreateTokenPlayer.Tag != destroy.BindTag {
		t.Errorf("CreateTokenPlayer = %+v; want ControllerOfTag(%q)", nested.CreateTokenPlayer, destroy.BindTag)
	}
}

// TestParseTextSagaChapters covers chapter-range triggers and the derived
// MaxSagaChapter.
func TestParseTextSagaChapters(t *testing.T) {
	def, err := NewCardBuilder("Test Saga").
		ParseText("Type: Enchantment — Saga\nI — You gain 2 life.\nII, III — Draw a card.")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if def.Card.TypeLine != "Enchantment — Saga" {
		t.Fatalf("TypeLine = %q", def.Card.TypeLine)
	}
	if def.MaxSagaChapter != 3 {
		t.Errorf("MaxSagaChapter = %d; want 3", def.MaxSagaChapter)
	}
	if len(def.Abilities) != 2 {
		t.Fatalf("len(Abilities) = %d; want 2", len(def.Abilities))
	}
	first := def.Abilities[0]
	if first.Trigger == nil || first.Trigger.Kind != TrigSagaChapter {
		t.Fatalf("Abilities[0].Trigger = %+v; want TrigSagaChapter", first.Trigger)
	}
	if diff := cmp.Diff([]int{1}, first.Trigger.SagaChapters); diff != "" {
		t.Errorf("Abilities[0].Trigger.SagaChapters mismatch (-want +got):\n%s", diff)
	}
	second := def.Abilities[1]
	if diff := cmp.Diff([]int{2, 3}, second.Trigger.SagaChapters); diff != "" {
		t.Errorf("Abilities[1].Trigger.SagaChapters mismatch (-want +got):\n%s", diff)
	}
}

// TestParseTextEmpty covers the empty-text boundary: no lines, no
// abilities, no error.
func TestParseTextEmpty(t *testing.T) {
	def, err := NewCardBuilder("Test Blank").ParseText("")
	if err != nil {
		t.Fatalf("ParseText(\"\") returned error: %v", err)
	}
	if len(def.Abilities) != 0 || len(def.SpellEffects) != 0 {
		t.Errorf("def = %+v; want no abilities or spell effects", def)
	}
}

// TestParseTextAllReminder covers a line that is entirely reminder text
// with no executable content: it normalizes to empty and is silently
// skipped rather than erroring.
func TestParseTextAllReminder(t *testing.T) {
	def, err := NewCardBuilder("Serra Angel").
		CardTypes("Creature").
		ParseText("(This creature can't be blocked except by flying or reach.)")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(def.Abilities) != 0 {
		t.Errorf("Abilities = %+v; want none", def.Abilities)
	}
}

// TestParseTextMetadataOnly covers metadata-prefixed lines with no oracle
// text body: the builder's card fields are populated and no abilities are
// produced.
func TestParseTextMetadataOnly(t *testing.T) {
	def, err := NewCardBuilder("Test Elemental").ParseText(
		"Mana cost: {2}{R}\nType: Creature — Elemental\nPower/Toughness: 3/3",
	)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if def.Card.ManaCost != "{2}{R}" {
		t.Errorf("ManaCost = %q; want {2}{R}", def.Card.ManaCost)
	}
	if def.Card.Power != "3" || def.Card.Toughness != "3" {
		t.Errorf("Power/Toughness = %s/%s; want 3/3", def.Card.Power, def.Card.Toughness)
	}
	if len(def.Abilities) != 0 {
		t.Errorf("Abilities = %+v; want none", def.Abilities)
	}
}

// TestParseTextWithAnnotationsTagSpansWithinLine is a property test: for
// any of a fixed set of oracle texts that mint an object tag, the
// recorded tag span's byte range must lie within the span of the
// original line it came from. This is the "every produced tag reference
// resolves to a span inside its own line" invariant.
func TestParseTextWithAnnotationsTagSpansWithinLine(t *testing.T) {
	texts := []string{
		"Destroy target permanent.",
		"Exile target creature.",
		"Create a Treasure token.",
	}
	rapid.Check(t, func(rt *rapid.T) {
		text := texts[rapid.IntRange(0, len(texts)-1).Draw(rt, "textIdx")]
		def, annotations, err := NewCardBuilder("Test Card").CardTypes("Instant").ParseTextWithAnnotations(text)
		if err != nil {
			rt.Fatalf("ParseTextWithAnnotations(%q): %v", text, err)
		}
		if len(def.SpellEffects) == 0 {
			rt.Fatalf("expected at least one spell effect for %q", text)
		}
		for tag, span := range annotations.TagSpans {
			if span.Line < 0 || span.Line >= len(annotations.OriginalLines) {
				rt.Fatalf("tag %q span %+v references an out-of-range line", tag, span)
			}
			original := annotations.OriginalLines[span.Line]
			if span.Start < 0 || span.End > len(original) || span.Start > span.End {
				rt.Fatalf("tag %q span %+v falls outside its line %q", tag, span, original)
			}
		}
	})
}

// TestParseTextIdempotentOnCanonicalText is a property test for the
// compiler's determinism invariant: compiling the same canonical oracle
// text twice produces the same ability/effect shape (abilities carry
// freshly minted IDs each call, so we compare the EffectAst trees rather
// than the whole CardDefinition).
func TestParseTextIdempotentOnCanonicalText(t *testing.T) {
	texts := []string{
		"Flying, vigilance",
		"Whenever this creature attacks, draw a card.",
		"{R}: This creature gets +1/+0 until end of turn.",
		"Destroy target permanent. If it was a land, its controller creates a Treasure token.",
	}
	rapid.Check(t, func(rt *rapid.T) {
		text := texts[rapid.IntRange(0, len(texts)-1).Draw(rt, "textIdx")]
		defA, err := NewCardBuilder("Test Bear").CardTypes("Creature").ParseText(text)
		if err != nil {
			rt.Fatalf("first ParseText(%q): %v", text, err)
		}
		defB, err := NewCardBuilder("Test Bear").CardTypes("Creature").ParseText(text)
		if err != nil {
			rt.Fatalf("second ParseText(%q): %v", text, err)
		}
		if diff := cmp.Diff(effectShapes(defA), effectShapes(defB)); diff != "" {
			rt.Fatalf("non-idempotent compile of %q (-first +second):\n%s", text, diff)
		}
	})
}

// effectShapes extracts the Kind of every ability/effect in def, in
// textual order, ignoring the freshly minted IDs each compile produces.
func effectShapes(def CardDefinition) []EffectKind {
	var kinds []EffectKind
	for _, a := range def.Abilities {
		for _, e := range a.Effects {
			kinds = append(kinds, e.Ast.Kind)
		}
	}
	for _, e := range def.SpellEffects {
		kinds = append(kinds, e.Ast.Kind)
	}
	return kinds
}
