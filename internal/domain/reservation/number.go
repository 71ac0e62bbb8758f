package reservation

import (
	"context"
	"fmt"
	"time"
)

// Sequencer hands out monotonically increasing values for a scope key. The
// implementation must be atomic under concurrent callers; counting existing
// rows and adding one races and is deliberately not an option here.
type Sequencer interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// NumberGenerator produces reservation numbers in the wire format
// RES-YYMMDD-NNNN, with NNNN drawn from a per-day atomic counter. Aborted
// creations may leave gaps in the sequence; numbers stay unique.
type NumberGenerator struct {
	seq Sequencer
}

func NewNumberGenerator(seq Sequencer) *NumberGenerator {
	return &NumberGenerator{seq: seq}
}

func (g *NumberGenerator) Generate(ctx context.Context, creationDate time.Time) (string, error) {
	day := creationDate.UTC().Format("060102")
	n, err := g.seq.Next(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RES-%s-%04d", day, n), nil
}
