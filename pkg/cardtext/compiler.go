package cardtext

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mtgsim/cardtext/internal/logger"
)

// parse runs the full five-stage pipeline over text against b's current
// metadata, first folding any metadata-prefixed lines into a copy of the
// builder (§4.1), then normalizing/lexing/parsing/compiling the
// remaining lines into abilities and spell effects (§4.2-§4.7), finally
// assembling the CardDefinition and ParseAnnotations (§4.9).
func (b *CardBuilder) parse(text string) (CardDefinition, ParseAnnotations, error) {
	working := *b
	workingCard := b.card

	rawLines := splitOracleLines(text)

	var oracleLines []string
	for _, line := range rawLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if kind, rest, ok := matchMetadataLine(line); ok {
			staged := &CardBuilder{card: workingCard}
			if err := applyMetadataLine(staged, kind, rest); err != nil {
				return CardDefinition{}, ParseAnnotations{}, err
			}
			workingCard = staged.card
			continue
		}
		oracleLines = append(oracleLines, line)
	}
	working.card = workingCard

	var abilities []Ability
	var spellEffects []RuntimeEffect
	var costEffects []RuntimeEffect
	var auraFilter *ObjectFilter
	var maxSagaChapter int
	optionalCosts := append([]OptionalCost{}, working.optionalCosts...)

	annotations := ParseAnnotations{TagSpans: map[string]TextSpan{}}

	modal := &pendingModal{}

	isPermanent := workingCard.IsLand() || workingCard.IsCreature() || workingCard.IsArtifact() ||
		workingCard.IsEnchantment() || workingCard.IsPlaneswalker()

	for lineIdx, rawLine := range oracleLines {
		norm := normalizeLine(rawLine, workingCard.Name)
		annotations.OriginalLines = append(annotations.OriginalLines, norm.Original)
		annotations.NormalizedLines = append(annotations.NormalizedLines, norm)
		annotations.CharMaps = append(annotations.CharMaps, norm.CharMap)

		if norm.Normalized == "" {
			continue
		}

		logger.LogCompiler("normalized line %d: %q", lineIdx, norm.Normalized)

		if isBulletLine(norm.Normalized) && modal.open {
			modeText := stripBullet(norm.Normalized)
			ctx := newCompileContext()
			effects, err := parseEffectSentences(modeText, ctx)
			if err != nil {
				return CardDefinition{}, ParseAnnotations{}, err
			}
			modal.modes = append(modal.modes, EffectMode{Text: modeText, Effects: effects})
			recordTagSpans(annotations, ctx, lineIdx, norm)
			continue
		}

		if modal.open {
			if ast, ok := modal.close(); ok {
				appendLineResult(&abilities, &spellEffects, ast, isPermanent)
			}
		}

		trigger, _ := splitModalTrigger(norm.Normalized)
		if strings.HasPrefix(norm.Normalized, "choose one") || trigger != nil {
			modal.open = true
			modal.trigger = trigger
			continue
		}

		ctx := newCompileContext()
		ast, err := parseLine(norm.Normalized, ctx)
		if err != nil {
			return CardDefinition{}, ParseAnnotations{}, err
		}
		recordTagSpans(annotations, ctx, lineIdx, norm)

		switch ast.Kind {
		case LineAdditionalCost:
			costEffects = append(costEffects, runtimeEffectsFrom(ctx, ast.Effects)...)
		case LineOptionalCost:
			if ast.OptionalCost != nil {
				optionalCosts = append(optionalCosts, *ast.OptionalCost)
			}
		default:
			appendLineResult(&abilities, &spellEffects, ast, isPermanent)
			if filter := auraFilterFrom(ast); filter != nil {
				auraFilter = filter
			}
			if ch := sagaChaptersFrom(ast); len(ch) > 0 {
				for _, c := range ch {
					if c > maxSagaChapter {
						maxSagaChapter = c
					}
				}
			}
		}
	}

	if modal.open {
		if ast, ok := modal.close(); ok {
			appendLineResult(&abilities, &spellEffects, ast, isPermanent)
		}
	}

	abilities = append(abilities, working.rawAbilities...)

	def := CardDefinition{
		ID:               uuid.New(),
		Card:             workingCard,
		Abilities:        abilities,
		SpellEffects:     spellEffects,
		AuraFilter:       auraFilter,
		AlternativeCasts: working.alternatives,
		OptionalCosts:    optionalCosts,
		MaxSagaChapter:   maxSagaChapter,
		CostEffects:      costEffects,
	}

	return def, annotations, nil
}

// appendLineResult folds one parsed line's LineAst into the accumulating
// ability/spell-effect lists, in textual order (§4.9, §8 "ability
// emission order matches the textual order of their producing lines").
func appendLineResult(abilities *[]Ability, spellEffects *[]RuntimeEffect, ast LineAst, isPermanent bool) {
	switch ast.Kind {
	case LineStatement:
		if len(ast.Effects) == 0 {
			return
		}
		ctx := newCompileContext()
		effects := runtimeEffectsFrom(ctx, ast.Effects)
		if isPermanent {
			*abilities = append(*abilities, Ability{
				ID:              uuid.New(),
				Kind:            AbilityStatic,
				Effects:         effects,
				Static:          &StaticAbility{Name: "Statement"},
				FunctionalZones: []string{"battlefield"},
				Text:            ast.SourceText,
			})
			return
		}
		*spellEffects = append(*spellEffects, effects...)
	case LineTriggered:
		ctx := newCompileContext()
		*abilities = append(*abilities, Ability{
			ID:              uuid.New(),
			Kind:            AbilityTriggered,
			Trigger:         ast.Trigger,
			Effects:         runtimeEffectsFrom(ctx, ast.Effects),
			FunctionalZones: []string{"battlefield"},
			Text:            ast.SourceText,
		})
	case LineAbility:
		if ast.Ability != nil {
			a := *ast.Ability
			a.ID = uuid.New()
			*abilities = append(*abilities, a)
		}
	case LineStaticAbilities:
		for _, sa := range ast.StaticAbilities {
			sa := sa
			*abilities = append(*abilities, Ability{
				ID:              uuid.New(),
				Kind:            AbilityStatic,
				Static:          &sa,
				FunctionalZones: []string{"battlefield"},
				Text:            ast.SourceText,
			})
		}
	case LineKeywordList:
		for _, kw := range ast.Keywords {
			kw := kw
			*abilities = append(*abilities, Ability{
				ID:              uuid.New(),
				Kind:            AbilityStatic,
				Static:          &kw,
				FunctionalZones: []string{"battlefield"},
				Text:            ast.SourceText,
			})
		}
	}
}

func auraFilterFrom(ast LineAst) *ObjectFilter {
	for _, eff := range ast.Effects {
		if eff.Kind == EffEnchant {
			f := eff.Filter
			return &f
		}
	}
	return nil
}

func sagaChaptersFrom(ast LineAst) []int {
	if ast.Trigger != nil && ast.Trigger.Kind == TrigSagaChapter {
		return ast.Trigger.SagaChapters
	}
	return nil
}

// splitModalTrigger recognizes a modal header line that itself carries a
// trigger clause ("Whenever ..., choose one —"), per §5's modal state
// machine note.
func splitModalTrigger(line string) (*TriggerSpec, string) {
	for _, lead := range triggerLeads {
		if strings.HasPrefix(line, lead) {
			rest := strings.TrimPrefix(line, lead)
			if idx := strings.Index(rest, "choose one"); idx >= 0 {
				clause := strings.TrimSpace(strings.TrimSuffix(rest[:idx], ","))
				trig, err := parseTriggerClause(clause)
				if err == nil {
					return trig, rest[idx:]
				}
			}
		}
	}
	return nil, line
}

// recordTagSpans threads the span a line's tokens occupy into
// annotations.TagSpans under the object tag the line's CompileContext
// bound last (ctx.lastObjectTag); a tag bound earlier on the same line
// and then superseded gets no entry. This satisfies §3's invariant that every tag_spans entry lies within its
// line's byte range. The span is derived from the lexer's token stream
// (first token start to last token end) rather than the raw line bounds,
// so it excludes stripped reminder text and trailing whitespace the
// normalizer already discarded; per-token tag provenance is tracked at
// the statement level rather than per effect in this design.
func recordTagSpans(annotations ParseAnnotations, ctx *CompileContext, lineIdx int, norm NormalizedLine) {
	if !ctx.hasObjectTag {
		return
	}
	span := lineTokenSpan(lineIdx, norm)
	annotations.TagSpans[ctx.lastObjectTag] = span
}

// lineTokenSpan lexes norm and returns the span covering its full token
// stream, falling back to the whole original-line range when the line
// lexes to no tokens (e.g. a line of only discarded punctuation).
func lineTokenSpan(lineIdx int, norm NormalizedLine) TextSpan {
	tokens := lex(lineIdx, norm.Normalized, norm.CharMap)
	if len(tokens) == 0 {
		return TextSpan{Line: lineIdx, Start: 0, End: len(norm.Original)}
	}
	start := tokens[0].Span.Start
	end := tokens[len(tokens)-1].Span.End
	return TextSpan{Line: lineIdx, Start: start, End: end}
}
