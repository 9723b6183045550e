package brs

import (
	"go.uber.org/zap"

	"github.com/arloliu/brs/compress"
	"github.com/arloliu/brs/internal/options"
)

// Config holds the settings shared by Encoder and Decoder.
type Config struct {
	logger           *zap.Logger
	compressionLevel int
	noCompression    bool
}

// Option configures an Encoder or Decoder.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:           zap.NewNop(),
		compressionLevel: -1,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) codec() (compress.Codec, error) {
	return compress.CreateCodec(c.compressionLevel, c.noCompression)
}

// WithLogger sets the logger used for per-block debug output.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithCompressionLevel sets the zlib level used when writing blocks: -1 for
// the default level, 0 to 9 otherwise. Decoders ignore it.
func WithCompressionLevel(level int) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.CreateCodec(level, false); err != nil {
			return err
		}
		c.compressionLevel = level

		return nil
	})
}

// WithoutCompression makes the encoder store every block raw. The output is
// still a valid save file.
func WithoutCompression() Option {
	return options.NoError(func(c *Config) {
		c.noCompression = true
	})
}
