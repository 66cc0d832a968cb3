// Package logger provides diagnostic logging for the card text compiler.
package logger

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtgsim/cardtext/pkg/types"
)

var currentLogLevel = types.CARD

var logger = &Logger{
	logger: log.New(os.Stdout, "", log.Ltime),
}

// Logger wraps the standard logger with compiler-specific formatting.
type Logger struct {
	logger *log.Logger
}

// SetLogLevel sets the current logging level.
func SetLogLevel(level types.LogLevel) {
	currentLogLevel = level
}

// LogMeta logs package-initialization / lexicon-loading messages.
func LogMeta(message string, args ...interface{}) {
	if currentLogLevel >= types.META {
		logger.logger.Printf("META: "+message, args...)
	}
}

// LogCard logs per-card compile diagnostics.
func LogCard(message string, args ...interface{}) {
	if currentLogLevel >= types.CARD {
		logger.logger.Printf("CARD: "+message, args...)
	}
}

// LogCompiler logs per-stage pipeline tracing (normalizer/lexer/parser/
// compiler). This is purely diagnostic: the compiler's control flow never
// depends on whether logging is enabled.
func LogCompiler(message string, args ...interface{}) {
	if currentLogLevel >= types.COMPILER {
		logger.logger.Printf("COMPILER: "+message, args...)
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(level string) types.LogLevel {
	switch level {
	case "META":
		return types.META
	case "CARD":
		return types.CARD
	case "COMPILER":
		return types.COMPILER
	default:
		return types.CARD
	}
}

// ParsingFailureLogger handles logging of card parsing failures to a file,
// deduplicated by card name across a process lifetime.
type ParsingFailureLogger struct {
	logFile string
	cache   map[string]bool
}

var parsingLogger *ParsingFailureLogger

// InitParsingLogger initializes the parsing failure logger.
func InitParsingLogger() error {
	if parsingLogger != nil {
		return nil
	}

	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	logFile := filepath.Join(logsDir, "parsing_failures.log")
	parsingLogger = &ParsingFailureLogger{
		logFile: logFile,
		cache:   make(map[string]bool),
	}

	if err := parsingLogger.loadExistingEntries(); err != nil {
		LogCard("Warning: Failed to load existing parsing failure entries: %v", err)
	}

	return nil
}

// loadExistingEntries loads existing log entries to avoid duplicates.
func (pfl *ParsingFailureLogger) loadExistingEntries() error {
	file, err := os.Open(pfl.logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "[") && strings.Contains(line, "]") {
			start := strings.Index(line, "[") + 1
			end := strings.Index(line, "]")
			if start < end {
				cardName := line[start:end]
				pfl.cache[cardName] = true
			}
		}
	}

	return scanner.Err()
}

// LogParseFailure logs a card parsing failure if not already logged. Callers
// of the compiler (not the compiler itself) are expected to invoke this when
// parse_text/parse_text_with_annotations returns an error they want retained
// for later inspection; the compiler never calls it internally.
func LogParseFailure(cardName, oracleText, errorDetails string) {
	if parsingLogger == nil {
		if err := InitParsingLogger(); err != nil {
			LogCard("Failed to initialize parsing logger: %v", err)
			return
		}
	}

	if parsingLogger.cache[cardName] {
		return
	}
	parsingLogger.cache[cardName] = true

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logEntry := fmt.Sprintf("%s [%s] Parsing failed\nOracle Text: %s\nError: %s\n---\n",
		timestamp, cardName, oracleText, errorDetails)

	file, err := os.OpenFile(parsingLogger.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		LogCard("Failed to open parsing failure log: %v", err)
		return
	}
	defer file.Close()

	if _, err := file.WriteString(logEntry); err != nil {
		LogCard("Failed to write parsing failure log: %v", err)
	}

	LogCard("Parsing failure logged for card: %s", cardName)
}
