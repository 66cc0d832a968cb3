// Package card provides mana-cost parsing for the MTG card text compiler.
package card

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mtgsim/cardtext/pkg/types"
)

// ManaPip is one brace-delimited symbol group in a mana cost, e.g. {W},
// {2}, {W/U}, {W/P}, {X}, {S}, {C}.
type ManaPip struct {
	// Generic is the numeric value of a plain {N} pip. Colors is empty
	// for these.
	Generic int
	// IsX marks an {X} pip; its value isn't known until the spell is cast,
	// which is outside this compiler's scope.
	IsX bool
	// IsSnow marks a {S} pip.
	IsSnow bool
	// Colors lists the colored/colorless alternatives in the pip. A single
	// entry is a plain colored pip ({W}); two entries are a hybrid pip
	// ({W/U}); Phyrexian pips carry one color plus Phyrexian=true.
	Colors []types.ManaType
	// Phyrexian marks a pip payable with 2 life instead of its color
	// ({W/P}).
	Phyrexian bool
}

// ManaCost is a parsed, ordered sequence of mana pips.
type ManaCost struct {
	Pips []ManaPip
}

var pipPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ParseManaCost parses a Scryfall-style mana cost string such as
// "{X}{2}{W/U}{B}" into an ordered ManaCost. It accepts hybrid and
// Phyrexian pips, generic numerics, X, snow, and colorless, per §4.1/§6.
func ParseManaCost(cost string) ManaCost {
	var mc ManaCost
	for _, match := range pipPattern.FindAllStringSubmatch(cost, -1) {
		mc.Pips = append(mc.Pips, parsePip(match[1]))
	}
	return mc
}

func parsePip(symbol string) ManaPip {
	symbol = strings.ToUpper(symbol)
	if symbol == "X" {
		return ManaPip{IsX: true}
	}
	if symbol == "S" {
		return ManaPip{IsSnow: true}
	}
	if n, err := strconv.Atoi(symbol); err == nil {
		return ManaPip{Generic: n}
	}

	phyrexian := false
	var colors []types.ManaType
	for _, p := range strings.Split(symbol, "/") {
		if p == "P" {
			phyrexian = true
			continue
		}
		colors = append(colors, symbolToManaType(p))
	}
	return ManaPip{Colors: colors, Phyrexian: phyrexian}
}

func symbolToManaType(s string) types.ManaType {
	switch s {
	case "W":
		return types.White
	case "U":
		return types.Blue
	case "B":
		return types.Black
	case "R":
		return types.Red
	case "G":
		return types.Green
	case "C":
		return types.Colorless
	default:
		return types.ManaType(s)
	}
}

// ManaValue computes the converted mana cost: the sum of generic pips plus
// one per colored/hybrid/Phyrexian/snow pip. X counts as 0, matching the
// comprehensive rules' treatment of X while the spell is not on the stack.
func (mc ManaCost) ManaValue() int {
	total := 0
	for _, pip := range mc.Pips {
		switch {
		case pip.IsX:
		case pip.IsSnow:
			total++
		case len(pip.Colors) > 0:
			total++
		default:
			total += pip.Generic
		}
	}
	return total
}

// Colors returns the set of colors this cost's pips can be paid with,
// deduplicated, in WUBRG order. Generic, X, and snow pips contribute no
// color. A hybrid or Phyrexian pip contributes every color it lists.
func (mc ManaCost) Colors() []types.ManaType {
	seen := map[types.ManaType]bool{}
	for _, pip := range mc.Pips {
		for _, c := range pip.Colors {
			if c != types.Colorless {
				seen[c] = true
			}
		}
	}
	var out []types.ManaType
	for _, c := range []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green} {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// String renders the cost back to its canonical brace form.
func (mc ManaCost) String() string {
	var sb strings.Builder
	for _, pip := range mc.Pips {
		sb.WriteByte('{')
		switch {
		case pip.IsX:
			sb.WriteString("X")
		case pip.IsSnow:
			sb.WriteString("S")
		case len(pip.Colors) > 0:
			parts := make([]string, 0, len(pip.Colors)+1)
			for _, c := range pip.Colors {
				parts = append(parts, string(c))
			}
			if pip.Phyrexian {
				parts = append(parts, "P")
			}
			sb.WriteString(strings.Join(parts, "/"))
		default:
			sb.WriteString(strconv.Itoa(pip.Generic))
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

// PhyrexianLifeCost returns the life payable in lieu of each Phyrexian pip
// (2 life per the comprehensive rules), counting the pips that carry one.
func (mc ManaCost) PhyrexianLifeCost() int {
	count := 0
	for _, pip := range mc.Pips {
		if pip.Phyrexian {
			count++
		}
	}
	return count * 2
}

// ValidateManaCost reports a descriptive error if the cost string contains a
// pip this compiler cannot classify (an unrecognized symbol inside braces).
// Symbol letters are compared case-insensitively: oracle-text cost clauses
// reach this function after the normalizer has lowercased the whole line
// (§4.2), while a "Mana cost:" metadata line keeps Scryfall's original case
// (§4.1) — both must validate the same way.
func ValidateManaCost(cost string) error {
	for _, match := range pipPattern.FindAllStringSubmatch(cost, -1) {
		symbol := strings.ToUpper(match[1])
		if symbol == "X" || symbol == "S" {
			continue
		}
		if _, err := strconv.Atoi(symbol); err == nil {
			continue
		}
		for _, p := range strings.Split(symbol, "/") {
			if p == "P" {
				continue
			}
			switch p {
			case "W", "U", "B", "R", "G", "C":
			default:
				return fmt.Errorf("unrecognized mana symbol %q in cost %q", p, cost)
			}
		}
	}
	return nil
}
