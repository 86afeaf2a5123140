package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout bounds a scheduled sweep.
const sweepTimeout = 5 * time.Minute

// Schedule registers s on a new cron scheduler using spec (standard five-field or descriptors such as
// "@every 1h"). The returned scheduler is not started. An empty spec returns nil, nil.
func Schedule(spec string, s *Sweeper, log *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	logger := cronLogger{s: log.Named("cron").Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			log.Warn("scheduled high-risk sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
