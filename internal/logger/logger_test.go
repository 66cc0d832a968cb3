package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/mtgsim/cardtext/pkg/types"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected types.LogLevel
	}{
		{"META", types.META},
		{"CARD", types.CARD},
		{"COMPILER", types.COMPILER},
		{"invalid", types.CARD},
		{"", types.CARD},
	}

	for _, test := range tests {
		result := ParseLogLevel(test.input)
		if result != test.expected {
			t.Errorf("ParseLogLevel(%s) = %d; expected %d", test.input, result, test.expected)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := currentLogLevel
	defer func() {
		currentLogLevel = originalLevel
	}()

	SetLogLevel(types.META)
	if currentLogLevel != types.META {
		t.Errorf("Expected log level to be META, got %d", currentLogLevel)
	}

	SetLogLevel(types.COMPILER)
	if currentLogLevel != types.COMPILER {
		t.Errorf("Expected log level to be COMPILER, got %d", currentLogLevel)
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger.logger
	logger.logger = log.New(&buf, "", 0)
	defer func() {
		logger.logger = originalLogger
	}()

	SetLogLevel(types.COMPILER)
	buf.Reset()

	LogMeta("Meta message")
	LogCard("Card message")
	LogCompiler("Compiler message")

	output := buf.String()
	expectedMessages := []string{
		"META: Meta message",
		"CARD: Card message",
		"COMPILER: Compiler message",
	}

	for _, expected := range expectedMessages {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain '%s', got: %s", expected, output)
		}
	}

	SetLogLevel(types.CARD)
	buf.Reset()

	LogMeta("Meta message 2")
	LogCard("Card message 2")
	LogCompiler("Compiler message 2")

	output = buf.String()

	if !strings.Contains(output, "META: Meta message 2") {
		t.Errorf("Expected META message to be logged at CARD level")
	}
	if !strings.Contains(output, "CARD: Card message 2") {
		t.Errorf("Expected CARD message to be logged at CARD level")
	}
	if strings.Contains(output, "COMPILER: Compiler message 2") {
		t.Errorf("Expected COMPILER message NOT to be logged at CARD level")
	}

	SetLogLevel(types.META)
	buf.Reset()

	LogMeta("Meta message 3")
	LogCard("Card message 3")

	output = buf.String()

	if !strings.Contains(output, "META: Meta message 3") {
		t.Errorf("Expected META message to be logged at META level")
	}
	if strings.Contains(output, "CARD: Card message 3") {
		t.Errorf("Expected CARD message NOT to be logged at META level")
	}
}

func TestLoggingWithFormatting(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger.logger
	logger.logger = log.New(&buf, "", 0)
	defer func() {
		logger.logger = originalLogger
	}()

	SetLogLevel(types.COMPILER)
	buf.Reset()

	LogCard("Compiling card: %s", "Lightning Bolt")
	LogCompiler("normalized line %d: %q", 2, "this creature dies")

	output := buf.String()

	if !strings.Contains(output, "CARD: Compiling card: Lightning Bolt") {
		t.Errorf("Expected formatted CARD message, got: %s", output)
	}
	if !strings.Contains(output, `COMPILER: normalized line 2: "this creature dies"`) {
		t.Errorf("Expected formatted COMPILER message, got: %s", output)
	}
}
