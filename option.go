package chainkit

import (
	"time"

	"github.com/lumos-labs/chainkit/logger"
	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/storage"
)

type Option func(*SDK)

func WithLogger(l logger.Logger) Option {
	return func(s *SDK) {
		s.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(s *SDK) {
		s.metrics = r
	}
}

func WithStorage(store storage.Store) Option {
	return func(s *SDK) {
		s.store = store
	}
}

func WithTimeout(t time.Duration) Option {
	return func(s *SDK) {
		s.timeout = t
	}
}
