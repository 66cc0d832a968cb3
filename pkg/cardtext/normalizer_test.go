package cardtext

import "testing"

func TestNormalizeLineLowercasesAndSubstitutesName(t *testing.T) {
	n := normalizeLine("Whenever Grizzly Bears attacks, draw a card.", "Grizzly Bears")
	want := "whenever this attacks, draw a card."
	if n.Normalized != want {
		t.Errorf("Normalized = %q; want %q", n.Normalized, want)
	}
	if len(n.CharMap) != len([]rune(n.Normalized)) {
		t.Errorf("char map length %d does not match normalized length %d", len(n.CharMap), len([]rune(n.Normalized)))
	}
}

func TestNormalizeLineUsesShortName(t *testing.T) {
	n := normalizeLine("Tivit, Seller of Secrets enters the battlefield.", "Tivit, Seller of Secrets")
	want := "this enters the battlefield."
	if n.Normalized != want {
		t.Errorf("Normalized = %q; want %q", n.Normalized, want)
	}
}

func TestNormalizeLineStripsReminderText(t *testing.T) {
	n := normalizeLine("Flying (This creature can't be blocked except by flying or reach.)", "Serra Angel")
	want := "flying"
	if n.Normalized != want {
		t.Errorf("Normalized = %q; want %q", n.Normalized, want)
	}
}

func TestNormalizeLineRetainsExecutableParenthetical(t *testing.T) {
	n := normalizeLine("({T}: Add {C}.)", "Mox Amber")
	want := "{t}: add {c}."
	if n.Normalized != want {
		t.Errorf("Normalized = %q; want %q", n.Normalized, want)
	}
}

func TestNormalizeLineDropsPurelyParentheticalReminder(t *testing.T) {
	n := normalizeLine("(Equipped creature gets +1/+1.)", "Test Card")
	if n.Normalized != "" {
		t.Errorf("Normalized = %q; want empty", n.Normalized)
	}
}

func TestNormalizeLineCharMapResolvesToOriginalOffsets(t *testing.T) {
	n := normalizeLine("Draw a card.", "Test Card")
	for i, want := range []int{0, 1, 2, 3} {
		if n.CharMap.OriginalOffset(i) != want {
			t.Errorf("CharMap[%d] = %d; want %d", i, n.CharMap.OriginalOffset(i), want)
		}
	}
}
