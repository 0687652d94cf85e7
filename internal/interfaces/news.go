package interfaces

import (
	"context"
	"time"
)

// NewsGenerator produces a market-news blurb for the given simulation day.
type NewsGenerator interface {
	Generate(ctx context.Context, day time.Time) (string, error)
}
