package engineobs

import (
	"context"
	"time"

	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/trace"
	"cryptopulse/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Step(ctx context.Context, asset types.Asset) (*types.AnalysisReport, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Step")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting analysis cycle",
		"asset", asset.ID,
		"symbol", asset.Symbol,
	)

	report, err := oe.engine.Step(ctx, asset)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Analysis cycle failed", err,
			"asset", asset.ID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Analysis cycle completed",
		"asset", asset.ID,
		"signal", string(report.Signal),
		"overall_sentiment", report.Trend.OverallSentiment,
		"stop_loss", report.Risk.StopLoss,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
