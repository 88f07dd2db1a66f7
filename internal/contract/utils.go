package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gridcarbon/schema"
)

// Color variables for console output.
var (
	VeryHighColor = color.New(color.FgRed, color.Bold)     // VeryHighColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // ModerateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents a clean grid.
	VeryLowColor  = color.New(color.FgGreen, color.Bold)   // VeryLowColor represents a very clean grid.
)

// GetPlainLabel returns a title-cased label for an intensity level.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(level schema.IntensityLevel) string {
	switch level {
	case schema.VeryLowLevel:
		return "Very Low"
	case schema.LowLevel:
		return "Low"
	case schema.ModerateLevel:
		return "Moderate"
	case schema.HighLevel:
		return "High"
	case schema.VeryHighLevel:
		return "Very High"
	default:
		return string(level)
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(level schema.IntensityLevel) string {
	text := GetPlainLabel(level)

	switch level {
	case schema.VeryHighLevel:
		return VeryHighColor.Sprint(text)
	case schema.HighLevel:
		return HighColor.Sprint(text)
	case schema.ModerateLevel:
		return ModerateColor.Sprint(text)
	case schema.LowLevel:
		return LowColor.Sprint(text)
	case schema.VeryLowLevel:
		return VeryLowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for response cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gridcarbon_cache.db"
	}
	return filepath.Join(homeDir, ".gridcarbon_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gridcarbon_history.db"
	}
	return filepath.Join(homeDir, ".gridcarbon_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
