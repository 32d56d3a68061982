package nest

import "go.uber.org/zap"

// Option configures layout construction and nested matrix behaviour.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	workers  int
	rowSizes map[int]int
	colSizes map[int]int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:   zap.NewNop(),
		workers:  1,
		rowSizes: make(map[int]int),
		colSizes: make(map[int]int),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger routes debug output to logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkers sets how many block rows Mult may compute concurrently.
// Values below 2 keep the multiply sequential.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithRowSize supplies the size of block row i. This is how a row with no
// blocks gets a size.
func WithRowSize(i, n int) Option {
	return func(c *config) { c.rowSizes[i] = n }
}

// WithColSize supplies the size of block column j.
func WithColSize(j, n int) Option {
	return func(c *config) { c.colSizes[j] = n }
}
