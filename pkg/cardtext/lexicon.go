package cardtext

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mtgsim/cardtext/internal/logger"
)

//go:embed data/lexicon.yaml
var lexiconYAML []byte

// tokenDefinitionEntry is the YAML shape of one fixed token-definition
// table row (§4.8). A power or toughness of -1 marks a "*" value (the
// Construct token's */*).
type tokenDefinitionEntry struct {
	Match     string   `yaml:"match"`
	Name      string   `yaml:"name"`
	CardTypes []string `yaml:"card_types"`
	Subtypes  []string `yaml:"subtypes"`
	Power     int      `yaml:"power"`
	Toughness int      `yaml:"toughness"`
	Colors    []string `yaml:"colors"`
	Keywords  []string `yaml:"keywords"`
}

type lexiconDoc struct {
	NoOpPhrases      []string               `yaml:"no_op_phrases"`
	Subtypes         []string               `yaml:"subtypes"`
	TokenDefinitions []tokenDefinitionEntry `yaml:"token_definitions"`
}

var lexicon lexiconDoc

var noOpPhraseSet map[string]bool
var subtypeLexicon map[string]bool

func init() {
	if err := yaml.Unmarshal(lexiconYAML, &lexicon); err != nil {
		logger.LogMeta("failed to load embedded lexicon: %v", err)
		return
	}
	noOpPhraseSet = make(map[string]bool, len(lexicon.NoOpPhrases))
	for _, p := range lexicon.NoOpPhrases {
		noOpPhraseSet[strings.ToLower(p)] = true
	}
	subtypeLexicon = make(map[string]bool, len(lexicon.Subtypes))
	for _, s := range lexicon.Subtypes {
		subtypeLexicon[strings.ToLower(s)] = true
	}
	logger.LogMeta("loaded lexicon: %d no-op phrases, %d subtypes, %d token definitions",
		len(lexicon.NoOpPhrases), len(lexicon.Subtypes), len(lexicon.TokenDefinitions))
}

// isBenignNoOp recognizes line-parser step 1 (§4.4): lines known not to
// have executable effects in this compiler's scope. The set is data
// driven per §9's open question ("the exact set ... is enumerated
// empirically").
func isBenignNoOp(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if noOpPhraseSet[lower] {
		return true
	}
	for phrase := range noOpPhraseSet {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}
