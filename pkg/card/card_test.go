package card

import "testing"

func TestCardTypeClassification(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		check    func(*Card) bool
	}{
		{"land", "Land", (*Card).IsLand},
		{"creature", "Creature — Bear", (*Card).IsCreature},
		{"instant", "Instant", (*Card).IsInstant},
		{"sorcery", "Sorcery", (*Card).IsSorcery},
		{"artifact", "Artifact", (*Card).IsArtifact},
		{"enchantment", "Enchantment — Saga", (*Card).IsEnchantment},
		{"planeswalker", "Legendary Planeswalker — Jace", (*Card).IsPlaneswalker},
	}

	for _, test := range tests {
		c := &Card{TypeLine: test.typeLine}
		if !test.check(c) {
			t.Errorf("%s: expected type line %q to classify as %s", test.name, test.typeLine, test.name)
		}
	}
}

func TestCardIsSaga(t *testing.T) {
	c := &Card{TypeLine: "Enchantment — Saga", Subtypes: []string{"Saga"}}
	if !c.IsSaga() {
		t.Errorf("expected Saga subtype to report IsSaga()")
	}

	bear := &Card{TypeLine: "Creature — Bear", Subtypes: []string{"Bear"}}
	if bear.IsSaga() {
		t.Errorf("did not expect Bear to report IsSaga()")
	}
}

func TestCardHasSupertypeAndSubtype(t *testing.T) {
	c := &Card{Supertypes: []string{"Legendary"}, Subtypes: []string{"Human", "Wizard"}}
	if !c.HasSupertype("legendary") {
		t.Errorf("expected case-insensitive supertype match")
	}
	if !c.HasSubtype("Wizard") {
		t.Errorf("expected subtype match")
	}
	if c.HasSubtype("Soldier") {
		t.Errorf("did not expect unrelated subtype to match")
	}
}

func TestCardDisplay(t *testing.T) {
	land := &Card{Name: "Forest", TypeLine: "Basic Land — Forest"}
	if got := land.Display(); got != "Forest" {
		t.Errorf("land.Display() = %q; want %q", got, "Forest")
	}

	creature := &Card{Name: "Grizzly Bears", TypeLine: "Creature — Bear", Power: "2", Toughness: "2"}
	if got := creature.Display(); got != "Grizzly Bears 2/2" {
		t.Errorf("creature.Display() = %q; want %q", got, "Grizzly Bears 2/2")
	}
}
