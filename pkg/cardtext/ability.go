package cardtext

import (
	"github.com/google/uuid"

	"github.com/mtgsim/cardtext/pkg/card"
)

// AbilityKind enumerates the runtime ability kinds §4.9 assembles.
type AbilityKind int

const (
	AbilityStatic AbilityKind = iota
	AbilityActivated
	AbilityMana
	AbilityTriggered
	AbilityLevel
)

// ActivationTiming restricts when an activated ability may be activated.
type ActivationTiming int

const (
	TimingAnyTime ActivationTiming = iota
	TimingSorcerySpeed
	TimingOncePerTurn
)

// RuntimeEffect is the lowered, opaque-to-the-compiler effect descriptor
// handed to the out-of-scope runtime (§3: "Effect ... opaque to the
// compiler; constructed by typed factory functions"). It carries a stable
// ID, following the teacher's Ability.ID/StackObject.ID uuid.UUID pattern
// (pkg/ability/types.go), so the runtime can reference a specific effect
// across turns (e.g. a PumpByLastEffect referencing it by EffectID).
type RuntimeEffect struct {
	ID       uuid.UUID
	EffectID int
	Ast      EffectAst
}

func newRuntimeEffect(effectID int, ast EffectAst) RuntimeEffect {
	return RuntimeEffect{ID: uuid.New(), EffectID: effectID, Ast: ast}
}

// StaticAbility is a typed, closed-set continuous-effect/replacement
// record. The compiler never emits an open-ended string for a static
// ability other than inside Marker (§8 "static-ability closed set").
type StaticAbility struct {
	Name        string
	Marker      string
	PowerMod    int
	ToughnessMod int
	SetsBasePT  bool
	BasePower   int
	BaseTough   int
	Filter      ObjectFilter
	GrantedKeywords []string
	Restriction string
}

// Ability is the runtime ability record CardDefinition owns (§3).
type Ability struct {
	ID              uuid.UUID
	Kind            AbilityKind
	Cost            TotalCost
	Effects         []RuntimeEffect
	Trigger         *TriggerSpec
	InterveningIf   *EffectAst
	Static          *StaticAbility
	Timing          ActivationTiming
	FunctionalZones []string
	Text            string
	Level           int
}

// OptionalCost is an alternative or supplemental cost a spell can be cast
// with (kicker, multikicker, buyback, entwine), shaped after
// original_source/cards/definitions/everflowing_chalice.rs's
// OptionalCost{label, TotalCost, repeatable} (§12 of SPEC_FULL.md).
type OptionalCost struct {
	Label      string
	Cost       TotalCost
	Repeatable bool
}

// ParseAnnotations is the diagnostic output returned alongside a
// CardDefinition by parse_text_with_annotations (§3).
type ParseAnnotations struct {
	TagSpans        map[string]TextSpan
	NormalizedLines []NormalizedLine
	OriginalLines   []string
	CharMaps        []CharMap
}

// CardDefinition is the compiler's final output (§3). It is immutable
// once returned; CardDefinition solely owns every ability/effect it
// contains.
type CardDefinition struct {
	ID uuid.UUID

	Card card.Card

	Abilities        []Ability
	SpellEffects     []RuntimeEffect
	AuraFilter       *ObjectFilter
	AlternativeCasts []string
	OptionalCosts    []OptionalCost
	MaxSagaChapter   int
	CostEffects      []RuntimeEffect
}
