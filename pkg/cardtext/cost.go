package cardtext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mtgsim/cardtext/pkg/card"
)

// CostComponentKind enumerates the activation-cost segment kinds §4.6
// recognizes.
type CostComponentKind int

const (
	CostTap CostComponentKind = iota
	CostPayLife
	CostDiscard
	CostSacrifice
	CostPutCounters
	CostRemoveCounters
	CostMana
	CostEnergy
)

// CostComponent is one typed segment of a TotalCost.
type CostComponent struct {
	Kind        CostComponentKind
	Amount      int
	CounterType string
	Filter      ObjectFilter
	Subject     string // "this" for direct source sacrifice, else a freshly minted tag
	ManaCost    card.ManaCost
}

// TotalCost concatenates the typed cost components an activation or
// additional-cost clause parses to (§4.6).
type TotalCost struct {
	Components []CostComponent
}

// freeCost is TotalCost::free() — a cost list with no components.
func freeCost() TotalCost {
	return TotalCost{}
}

// parseCost splits a comma-separated cost-segment list and parses each
// segment into a typed CostComponent, aggregating mana/energy segments
// in source order (§4.6).
func parseCost(text string, ctx *CompileContext) (TotalCost, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return freeCost(), nil
	}
	segments := splitCostSegments(text)
	var total TotalCost
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		comp, err := parseCostSegment(seg, ctx)
		if err != nil {
			return TotalCost{}, err
		}
		merged := false
		if comp.Kind == CostMana || comp.Kind == CostEnergy {
			for i := range total.Components {
				if total.Components[i].Kind == comp.Kind {
					total.Components[i].Amount += comp.Amount
					total.Components[i].ManaCost.Pips = append(total.Components[i].ManaCost.Pips, comp.ManaCost.Pips...)
					merged = true
					break
				}
			}
		}
		if !merged {
			total.Components = append(total.Components, comp)
		}
	}
	return total, nil
}

// splitCostSegments splits on top-level commas (braces aren't nested in
// cost segments, so a plain split suffices here).
func splitCostSegments(text string) []string {
	return strings.Split(text, ",")
}

var manaSymbolRe = regexp.MustCompile(`^(\{[^{}]+\})+$`)

func parseCostSegment(seg string, ctx *CompileContext) (CostComponent, error) {
	lower := strings.ToLower(seg)

	switch {
	case lower == "tap" || lower == "t" || lower == "{t}":
		return CostComponent{Kind: CostTap}, nil
	case lower == "e" || lower == "{e}":
		return CostComponent{Kind: CostEnergy, Amount: 1}, nil
	case strings.HasPrefix(lower, "pay") && strings.HasSuffix(lower, "life"):
		n, err := extractInt(lower, "pay", "life")
		if err != nil {
			return CostComponent{}, err
		}
		return CostComponent{Kind: CostPayLife, Amount: n}, nil
	case strings.HasPrefix(lower, "discard"):
		n := 1
		rest := strings.TrimSpace(strings.TrimPrefix(lower, "discard"))
		rest = strings.TrimSuffix(rest, "cards")
		rest = strings.TrimSuffix(rest, "card")
		rest = strings.TrimSpace(rest)
		if rest != "" {
			if parsed, err := strconv.Atoi(rest); err == nil {
				n = parsed
			}
		}
		return CostComponent{Kind: CostDiscard, Amount: n}, nil
	case strings.HasPrefix(lower, "sacrifice"):
		subject := strings.TrimSpace(strings.TrimPrefix(lower, "sacrifice"))
		if subject == "this" || subject == "" {
			return CostComponent{Kind: CostSacrifice, Subject: "this"}, nil
		}
		tag := ctx.freshTag("sacrificed")
		filter := parseObjectFilterPhrase(subject)
		return CostComponent{Kind: CostSacrifice, Subject: tag, Filter: filter}, nil
	case strings.HasPrefix(lower, "put") && strings.Contains(lower, "counter"):
		n, counterType, err := extractCounterClause(seg, "put")
		if err != nil {
			return CostComponent{}, err
		}
		return CostComponent{Kind: CostPutCounters, Amount: n, CounterType: counterType}, nil
	case strings.HasPrefix(lower, "remove") && strings.Contains(lower, "counter"):
		n, counterType, err := extractCounterClause(seg, "remove")
		if err != nil {
			return CostComponent{}, err
		}
		return CostComponent{Kind: CostRemoveCounters, Amount: n, CounterType: counterType}, nil
	case manaSymbolRe.MatchString(seg):
		if err := card.ValidateManaCost(seg); err != nil {
			return CostComponent{}, newParseError(err.Error(), seg)
		}
		return CostComponent{Kind: CostMana, ManaCost: card.ParseManaCost(seg)}, nil
	default:
		return CostComponent{}, newParseError("unrecognized cost segment", seg)
	}
}

func extractInt(s, prefix, suffix string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(s, prefix)), suffix))
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, newParseError("expected an integer in cost clause", s)
	}
	return n, nil
}

// extractCounterClause parses "put N <counter-type> counter(s) on X" or
// "remove N <counter-type> counter(s) [from X]" (§4.6).
func extractCounterClause(seg, verb string) (int, string, error) {
	fields := strings.Fields(strings.ToLower(seg))
	if len(fields) < 3 || fields[0] != verb {
		return 0, "", newParseError("malformed counter cost clause", seg)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, "", newParseError("expected a counter count", seg)
	}
	var counterTypeWords []string
	for _, w := range fields[2:] {
		if strings.HasPrefix(w, "counter") {
			break
		}
		counterTypeWords = append(counterTypeWords, w)
	}
	counterType := strings.Join(counterTypeWords, " ")
	if counterType == "" {
		return 0, "", newParseError("unsupported counter type", seg)
	}
	return n, counterType, nil
}
