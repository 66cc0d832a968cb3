package card

import (
	"testing"

	"github.com/mtgsim/cardtext/pkg/types"
)

func TestParseManaCost(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantMV   int
		wantCols []types.ManaType
	}{
		{"Progenitus", "{W}{W}{U}{U}{B}{B}{R}{R}{G}{G}", 10, []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green}},
		{"Khalni Hydra", "{G}{G}{G}{G}{G}{G}{G}{G}", 8, []types.ManaType{types.Green}},
		{"Devourer of Destiny", "{5}{C}{C}", 7, nil},
		{"Slivdrazi Monstrosity", "{W}{U}{B}{R}{G}{C}", 6, []types.ManaType{types.White, types.Blue, types.Black, types.Red, types.Green}},
		{"Eldritch Immunity", "{C}", 1, nil},
		{"Entreat the Angels", "{X}{X}{W}{W}{W}", 3, []types.ManaType{types.White}},
	}

	for _, test := range tests {
		result := ParseManaCost(test.cost)
		if result.ManaValue() != test.wantMV {
			t.Errorf("%s: ParseManaCost(%s).ManaValue() = %d; want %d", test.name, test.cost, result.ManaValue(), test.wantMV)
		}
		gotCols := result.Colors()
		if len(gotCols) != len(test.wantCols) {
			t.Errorf("%s: ParseManaCost(%s).Colors() = %v; want %v", test.name, test.cost, gotCols, test.wantCols)
			continue
		}
		for i, c := range test.wantCols {
			if gotCols[i] != c {
				t.Errorf("%s: ParseManaCost(%s).Colors()[%d] = %v; want %v", test.name, test.cost, i, gotCols[i], c)
			}
		}
	}
}

func TestParseManaCostHybridAndPhyrexian(t *testing.T) {
	mc := ParseManaCost("{2}{W/U}{B/P}")
	if mc.ManaValue() != 4 {
		t.Errorf("ManaValue() = %d; want 4", mc.ManaValue())
	}
	if len(mc.Pips) != 3 {
		t.Fatalf("expected 3 pips, got %d", len(mc.Pips))
	}
	hybrid := mc.Pips[1]
	if len(hybrid.Colors) != 2 || hybrid.Colors[0] != types.White || hybrid.Colors[1] != types.Blue {
		t.Errorf("hybrid pip = %+v; want W/U", hybrid)
	}
	phyrexian := mc.Pips[2]
	if !phyrexian.Phyrexian || len(phyrexian.Colors) != 1 || phyrexian.Colors[0] != types.Black {
		t.Errorf("phyrexian pip = %+v; want B/P", phyrexian)
	}
	if mc.PhyrexianLifeCost() != 2 {
		t.Errorf("PhyrexianLifeCost() = %d; want 2", mc.PhyrexianLifeCost())
	}
}

func TestParseManaCostSnowAndX(t *testing.T) {
	mc := ParseManaCost("{X}{S}{S}")
	if !mc.Pips[0].IsX {
		t.Errorf("expected first pip to be X")
	}
	if !mc.Pips[1].IsSnow || !mc.Pips[2].IsSnow {
		t.Errorf("expected snow pips")
	}
	if mc.ManaValue() != 2 {
		t.Errorf("ManaValue() = %d; want 2 (X contributes 0, snow pips contribute 1 each)", mc.ManaValue())
	}
}

func TestManaCostString(t *testing.T) {
	for _, cost := range []string{"{2}{W}{U}", "{X}{W/U}", "{B/P}", "{S}"} {
		mc := ParseManaCost(cost)
		if got := mc.String(); got != cost {
			t.Errorf("String() round-trip: ParseManaCost(%s).String() = %s", cost, got)
		}
	}
}

func TestValidateManaCost(t *testing.T) {
	if err := ValidateManaCost("{2}{W/U}{B/P}{X}{S}"); err != nil {
		t.Errorf("expected valid cost, got error: %v", err)
	}
	if err := ValidateManaCost("{Q}"); err == nil {
		t.Errorf("expected error for unrecognized symbol {Q}")
	}
}

// TestParseManaCostLowercaseSymbols covers an activated-ability cost clause
// reaching card.ParseManaCost/ValidateManaCost after oracle-text
// normalization has lowercased the whole line ("{R}" -> "{r}"); only a
// "Mana cost:" metadata line keeps Scryfall's original case.
func TestParseManaCostLowercaseSymbols(t *testing.T) {
	if err := ValidateManaCost("{r}{x}{s}{w/p}"); err != nil {
		t.Errorf("expected lowercase symbols to validate, got error: %v", err)
	}
	mc := ParseManaCost("{r}")
	if len(mc.Pips) != 1 || len(mc.Pips[0].Colors) != 1 || mc.Pips[0].Colors[0] != types.Red {
		t.Errorf("ParseManaCost(%q) = %+v; want a single red pip", "{r}", mc)
	}
}
