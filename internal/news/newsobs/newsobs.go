package newsobs

import (
	"context"
	"time"

	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/trace"
	"cryptopulse/internal/types"
)

type observableProvider struct {
	provider interfaces.StoryProvider
}

var _ interfaces.StoryProvider = (*observableProvider)(nil)

func Wrap(provider interfaces.StoryProvider) interfaces.StoryProvider {
	return &observableProvider{
		provider: provider,
	}
}

func (op *observableProvider) FetchStories(ctx context.Context, limit int) ([]types.Story, error) {
	ctx, span := trace.StartSpan(ctx, "news.FetchStories")
	defer span.End()

	start := time.Now()

	stories, err := op.provider.FetchStories(ctx, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Story fetch failed", err,
			"limit", limit,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Story fetch succeeded",
		"stories", len(stories),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return stories, nil
}
