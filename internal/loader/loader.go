// Package loader runs the one-shot city fetch and hands its outcome to the view.
package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/thecompernolles/citylist/internal/cities"
	"github.com/thecompernolles/citylist/internal/ctxutil"
	"github.com/thecompernolles/citylist/internal/tui"
	"go.uber.org/zap"
)

// FailureMessage is shown for every failed load. The underlying error only
// goes to the log.
const FailureMessage = "Oops! Something went wrong while loading the cities. Please check your connection or try again later."

type Fetcher interface {
	Fetch(ctx context.Context) ([]cities.City, error)
}

type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger
	once    sync.Once

	output chan tui.Msg
}

func New(fetcher Fetcher, logger *zap.Logger, output chan tui.Msg) *Loader {
	return &Loader{
		fetcher: fetcher,
		logger:  logger,
		output:  output,
	}
}

// Start fetches the city list and sends exactly one tui.Msg on the output
// channel. Only the first call does anything; it blocks until the message is
// delivered or ctx is done.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		l.load(ctx)
	})
}

func (l *Loader) load(ctx context.Context) {
	list, err := l.fetcher.Fetch(ctx)
	if err != nil {
		// Quit before the fetch resolved, nobody is listening
		if ctx.Err() != nil {
			l.logger.Debug("fetch abandoned", zap.Error(err))
			return
		}

		l.logger.Error("fetch error",
			zap.Error(err),
			zap.Bool("parse", errors.Is(err, cities.ErrParse)))

		ctxutil.Send(ctx, l.output, tui.Msg{
			Type: tui.MsgFailed,
			Text: FailureMessage,
		})
		return
	}

	l.logger.Info("cities loaded", zap.Int("count", len(list)))

	ctxutil.Send(ctx, l.output, tui.Msg{
		Type:   tui.MsgLoaded,
		Cities: list,
	})
}
