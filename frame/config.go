package frame

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/internal/options"
)

// initialColumnCapacity is the default number of directory entries reserved
// by a new encoder.
const initialColumnCapacity = 16

// EncoderConfig holds the options of an Encoder.
type EncoderConfig struct {
	logger       *zap.Logger
	capacity     int
	strictLength bool
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		logger:   zap.NewNop(),
		capacity: initialColumnCapacity,
	}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithStrictLength makes the encoder reject ragged tables with ErrRaggedTable.
//
// By default columns of different lengths are accepted and row counts are a
// per-column notion.
func WithStrictLength(strict bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.strictLength = strict
	})
}

// WithEncoderLogger sets the logger of the encoder. The default logger discards everything.
func WithEncoderLogger(logger *zap.Logger) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if logger == nil {
			return errs.ErrNilLogger
		}
		c.logger = logger

		return nil
	})
}

// WithInitialCapacity reserves room for n columns up front.
func WithInitialCapacity(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("initial capacity must not be negative, got %d", n)
		}
		c.capacity = n

		return nil
	})
}

// ViewConfig holds the options of a View.
type ViewConfig struct {
	logger *zap.Logger
}

func newViewConfig() *ViewConfig {
	return &ViewConfig{logger: zap.NewNop()}
}

// ViewOption configures a View.
type ViewOption = options.Option[*ViewConfig]

// WithViewLogger sets the logger of the view and of the operators run through
// it. The default logger discards everything.
func WithViewLogger(logger *zap.Logger) ViewOption {
	return options.New(func(c *ViewConfig) error {
		if logger == nil {
			return errs.ErrNilLogger
		}
		c.logger = logger

		return nil
	})
}
