package interfaces

import (
	"context"

	"cryptopulse/internal/types"
)

type Engine interface {
	Step(ctx context.Context, asset types.Asset) (*types.AnalysisReport, error)
}
