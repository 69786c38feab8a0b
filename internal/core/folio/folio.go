// Package folio provides domain contracts for sequential document numbering.
// Implementations live in the infrastructure layer.
package folio

import (
	"context"
	"fmt"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all folios (e.g., "COT", "FLT")
	Prefix string

	// PadWidth is the minimum number width (default 5)
	PadWidth int
}

// DefaultConfig returns the standard folio configuration for a prefix.
// Pattern: PREFIX-XXXXX (e.g., COT-00001).
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 5,
	}
}

// Format renders a sequence value as a folio string.
func (c Config) Format(num int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, padWidth, num)
}

// Generator allocates sequential document folios.
//
// Folio allocation is the one concurrency-sensitive operation around quote
// creation: a count-then-insert scheme races under concurrent load. The
// contract therefore requires implementations to allocate atomically (the
// Postgres implementation uses an UPSERT..RETURNING sequence row per prefix,
// serialized by the database). In Database-per-Tenant, implementations obtain
// the tenant connection from context.
type Generator interface {
	// NextFolio allocates and formats the next folio for cfg.Prefix.
	// Concurrent callers receive distinct, gapless values.
	NextFolio(ctx context.Context, cfg Config) (string, error)

	// SetNextValue sets the next raw sequence value (for migrations).
	SetNextValue(ctx context.Context, cfg Config, value int64) error
}

// ParseNumber extracts the numeric part from a formatted folio.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	var num int64
	if _, err := fmt.Sscanf(formatted, "%*[^-]-%d", &num); err != nil {
		return -1
	}
	return num
}
