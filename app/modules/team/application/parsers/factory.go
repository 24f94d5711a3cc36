package parsers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RosterEntry is one team row of an imported roster.
type RosterEntry struct {
	Name  string
	Color string
	// Row is the 1-based row number in the source file, for error messages.
	Row int
}

// Parser defines the interface for roster parsers.
type Parser interface {
	Parse(data []byte) ([]RosterEntry, error)
}

// ParserFactory defines the interface for creating parsers.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension.
type Factory struct{}

// NewFactory creates a new parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename.
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q (must be .csv or .xlsx)", ext)
	}
}
