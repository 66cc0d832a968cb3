package cardtext

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mtgsim/cardtext/internal/logger"
	"github.com/mtgsim/cardtext/pkg/card"
)

// CardBuilder is the mutable staging area for a card's metadata (§3, §6).
// It is constructed by the caller, consumed by the compiler, and never
// retained: Build/ParseText/ParseTextWithAnnotations/FromTextWithMetadata
// all finalize it into an immutable CardDefinition.
type CardBuilder struct {
	card card.Card

	rawAbilities  []Ability
	spellEffects  []RuntimeEffect
	alternatives  []string
	optionalCosts []OptionalCost
	sagaMax       int
}

// NewCardBuilder returns a CardBuilder for a card with the given name,
// matching original_source's builder(id, name) constructor (§6); this
// compiler does not track a caller-supplied id, since CardDefinition's
// identity is its own freshly minted uuid.UUID.
func NewCardBuilder(name string) *CardBuilder {
	return &CardBuilder{card: card.Card{Name: name}}
}

// ManaCost sets the card's mana cost (fluent setter, §6).
func (b *CardBuilder) ManaCost(cost string) *CardBuilder {
	b.card.ManaCost = cost
	return b
}

// ColorIndicator overrides the card's printed colors.
func (b *CardBuilder) ColorIndicator(colors ...string) *CardBuilder {
	b.card.Colors = colors
	return b
}

// Supertypes sets the card's supertypes (Legendary, Basic, Snow, ...).
func (b *CardBuilder) Supertypes(supertypes ...string) *CardBuilder {
	b.card.Supertypes = supertypes
	return b
}

// CardTypes sets the card's card types (Creature, Instant, ...).
func (b *CardBuilder) CardTypes(types ...string) *CardBuilder {
	b.card.CardTypes = types
	return b
}

// Subtypes sets the card's subtypes (Bear, Saga, Equipment, ...).
func (b *CardBuilder) Subtypes(subtypes ...string) *CardBuilder {
	b.card.Subtypes = subtypes
	return b
}

// OracleText sets the oracle text to be parsed.
func (b *CardBuilder) OracleText(text string) *CardBuilder {
	b.card.OracleText = text
	return b
}

// PowerToughness sets power and toughness.
func (b *CardBuilder) PowerToughness(power, toughness string) *CardBuilder {
	b.card.Power = power
	b.card.Toughness = toughness
	return b
}

// Loyalty sets a planeswalker's starting loyalty.
func (b *CardBuilder) Loyalty(loyalty string) *CardBuilder {
	b.card.Loyalty = loyalty
	return b
}

// Defense sets a battle's starting defense.
func (b *CardBuilder) Defense(defense string) *CardBuilder {
	b.card.Defense = defense
	return b
}

// Token marks the card as a token.
func (b *CardBuilder) Token(isToken bool) *CardBuilder {
	b.card.IsToken = isToken
	return b
}

// WithAbility adds a pre-built Ability, bypassing the parser entirely —
// for programmatic card definitions (§6).
func (b *CardBuilder) WithAbility(a Ability) *CardBuilder {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	b.rawAbilities = append(b.rawAbilities, a)
	return b
}

// WithAbilities adds several pre-built abilities at once.
func (b *CardBuilder) WithAbilities(abilities ...Ability) *CardBuilder {
	for _, a := range abilities {
		b.WithAbility(a)
	}
	return b
}

// keywordStaticAbility builds the canonical static Ability for a
// zero-argument keyword shortcut (Flying, Vigilance, ...).
func keywordStaticAbility(name string) Ability {
	return Ability{
		ID:              uuid.New(),
		Kind:            AbilityStatic,
		Static:          &StaticAbility{Name: name},
		FunctionalZones: []string{"battlefield"},
		Text:            name,
	}
}

// Flying adds a static Flying ability (keyword shortcut, §6).
func (b *CardBuilder) Flying() *CardBuilder { return b.WithAbility(keywordStaticAbility("Flying")) }

// Menace adds a static Menace ability.
func (b *CardBuilder) Menace() *CardBuilder { return b.WithAbility(keywordStaticAbility("Menace")) }

// Ward adds a static Ward N ability.
func (b *CardBuilder) Ward(n int) *CardBuilder {
	return b.WithAbility(keywordStaticAbility(fmt.Sprintf("Ward %d", n)))
}

// WithSpellEffect appends an effect to the non-permanent spell-effect list.
func (b *CardBuilder) WithSpellEffect(e RuntimeEffect) *CardBuilder {
	b.spellEffects = append(b.spellEffects, e)
	return b
}

// Flashback records flashback as an alternative casting method.
func (b *CardBuilder) Flashback(cost string) *CardBuilder {
	b.alternatives = append(b.alternatives, "flashback:"+cost)
	return b
}

// Kicker records a non-repeatable optional kicker cost.
func (b *CardBuilder) Kicker(cost string) *CardBuilder {
	return b.withOptionalCost("kicker", cost, false)
}

// Multikicker records a repeatable optional multikicker cost: unlike
// kicker, it may be paid any number of times when casting the spell.
func (b *CardBuilder) Multikicker(cost string) *CardBuilder {
	return b.withOptionalCost("multikicker", cost, true)
}

// Buyback records a non-repeatable optional buyback cost.
func (b *CardBuilder) Buyback(cost string) *CardBuilder {
	return b.withOptionalCost("buyback", cost, false)
}

// Entwine records a non-repeatable optional entwine cost.
func (b *CardBuilder) Entwine(cost string) *CardBuilder {
	return b.withOptionalCost("entwine", cost, false)
}

func (b *CardBuilder) withOptionalCost(label, cost string, repeatable bool) *CardBuilder {
	mc := card.ParseManaCost(cost)
	b.optionalCosts = append(b.optionalCosts, OptionalCost{
		Label:      label,
		Cost:       TotalCost{Components: []CostComponent{{Kind: CostMana, ManaCost: mc}}},
		Repeatable: repeatable,
	})
	return b
}

// Saga sets the card's maximum saga chapter.
func (b *CardBuilder) Saga(max int) *CardBuilder {
	b.sagaMax = max
	return b
}

// WithChapter adds a triggered ability for the given saga chapter numbers.
func (b *CardBuilder) WithChapter(chapters []int, effects []RuntimeEffect) *CardBuilder {
	return b.WithAbility(Ability{
		Kind:            AbilityTriggered,
		Trigger:         &TriggerSpec{Kind: TrigSagaChapter, SagaChapters: chapters},
		Effects:         effects,
		FunctionalZones: []string{"battlefield"},
	})
}

// WithLevelAbilities adds a level-up ability set (stub: level abilities
// are assembled by the caller via WithAbility; this exists to match
// original_source's builder surface named in §6).
func (b *CardBuilder) WithLevelAbilities(abilities ...Ability) *CardBuilder {
	return b.WithAbilities(abilities...)
}

// Build finalizes the builder into a CardDefinition without parsing any
// oracle text (§6).
func (b *CardBuilder) Build() CardDefinition {
	return CardDefinition{
		ID:               uuid.New(),
		Card:             b.card,
		Abilities:        b.rawAbilities,
		SpellEffects:     b.spellEffects,
		AlternativeCasts: b.alternatives,
		OptionalCosts:    b.optionalCosts,
		MaxSagaChapter:   b.sagaMax,
	}
}

// ParseText parses oracle text and builds the resulting CardDefinition
// (§6). It does not return ParseAnnotations; use ParseTextWithAnnotations
// for the source-span map.
func (b *CardBuilder) ParseText(text string) (CardDefinition, error) {
	def, _, err := b.parse(text)
	return def, err
}

// ParseTextWithAnnotations parses oracle text, returning both the
// CardDefinition and the ParseAnnotations source-span map (§6).
func (b *CardBuilder) ParseTextWithAnnotations(text string) (CardDefinition, ParseAnnotations, error) {
	return b.parse(text)
}

// FromTextWithMetadata builds a combined input from builder metadata
// (mana cost, type line, P/T, loyalty, defense) prepended as "<Prefix>:
// <Value>" lines, then parses it. If parsing fails for a non-token
// reason, it falls back to storing the combined text as oracle text with
// no parsed abilities, per §6/§7's degraded-but-valid fallback.
func (b *CardBuilder) FromTextWithMetadata() (CardDefinition, error) {
	combined := b.combinedMetadataText()
	def, err := b.ParseText(combined)
	if err == nil {
		return def, nil
	}
	if IsTokenError(err) {
		return CardDefinition{}, err
	}
	logger.LogCompiler("degrading card %q after non-token parse error: %v", b.card.Name, err)
	fallback := b.card
	fallback.OracleText = combined
	return CardDefinition{ID: uuid.New(), Card: fallback}, nil
}

// TextBox is an alias for FromTextWithMetadata matching original_source's
// naming (§6).
func (b *CardBuilder) TextBox() (CardDefinition, error) {
	return b.FromTextWithMetadata()
}

func (b *CardBuilder) combinedMetadataText() string {
	var lines []string
	if b.card.ManaCost != "" {
		lines = append(lines, "Mana cost: "+b.card.ManaCost)
	}
	if b.card.TypeLine != "" {
		lines = append(lines, "Type: "+b.card.TypeLine)
	}
	if b.card.Power != "" && b.card.Toughness != "" {
		lines = append(lines, "Power/Toughness: "+b.card.Power+"/"+b.card.Toughness)
	}
	if b.card.Loyalty != "" {
		lines = append(lines, "Loyalty: "+b.card.Loyalty)
	}
	if b.card.Defense != "" {
		lines = append(lines, "Defense: "+b.card.Defense)
	}
	if b.card.OracleText != "" {
		lines = append(lines, b.card.OracleText)
	}
	return strings.Join(lines, "\n")
}
