// Package config loads the player's ABR configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/channel"
	"github.com/uccmisl/godash-bola/media"
)

// LadderRung is one averaged entry of the default ladder.
type LadderRung struct {
	Format    media.VideoFormat `yaml:"format"`
	SizeBytes uint64            `yaml:"size_bytes"`
	SSIM      float64           `yaml:"ssim"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TraceConfig struct {
	// Path of the qlog trace file. Empty disables tracing.
	Path string `yaml:"path"`
}

type Config struct {
	Algorithm string `yaml:"algorithm"`
	// MinBufferS is where the smallest and next-smallest formats are
	// equally preferred.
	MinBufferS float64 `yaml:"min_buffer_s"`
	// MaxBufferS is the most the server lets a client buffer.
	MaxBufferS     float64      `yaml:"max_buffer_s"`
	ChunkDurationS float64      `yaml:"chunk_duration_s"`
	Ladder         []LadderRung `yaml:"ladder"`
	Log            LogConfig    `yaml:"log"`
	Trace          TraceConfig  `yaml:"trace"`
}

var defaultSizes = []uint64{44319, 93355, 115601, 142904, 196884, 263965, 353752, 494902, 632193, 889893}

var defaultSSIMs = []float64{0.91050748, 0.94062527, 0.94806355, 0.95498943, 0.96214503,
	0.96717277, 0.97273958, 0.97689813, 0.98004106, 0.98332605}

// Default returns the built-in configuration: BOLA-BASIC with a 3 s min
// buffer, 15 s max buffer and a ladder averaged over past encodings.
func Default() Config {
	ladder := make([]LadderRung, len(defaultSizes))
	for i := range defaultSizes {
		ladder[i] = LadderRung{
			// Formats are placeholders; averages span channels.
			Format:    media.VideoFormat{Width: uint16(i + 1), Height: uint16(i + 1), CRF: 11},
			SizeBytes: defaultSizes[i],
			SSIM:      defaultSSIMs[i],
		}
	}
	return Config{
		Algorithm:      algorithms.NameBolaBasic,
		MinBufferS:     3,
		MaxBufferS:     15,
		ChunkDurationS: 2.002,
		Ladder:         ladder,
		Log:            LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Algorithm {
	case algorithms.NameBolaBasic, algorithms.NameBBA:
	default:
		return fmt.Errorf("algorithm: %w: %q", algorithms.ErrUnknownAlgo, c.Algorithm)
	}
	if c.MinBufferS < 0 || c.MinBufferS >= c.MaxBufferS {
		return fmt.Errorf("need 0 <= min_buffer_s (%g) < max_buffer_s (%g)", c.MinBufferS, c.MaxBufferS)
	}
	if !(c.ChunkDurationS > 0) {
		return fmt.Errorf("chunk_duration_s must be positive, got %g", c.ChunkDurationS)
	}
	if len(c.Ladder) < 2 {
		return fmt.Errorf("ladder needs at least 2 rungs, got %d", len(c.Ladder))
	}
	seen := make(map[media.VideoFormat]bool, len(c.Ladder))
	for i, r := range c.Ladder {
		if seen[r.Format] {
			return fmt.Errorf("ladder[%d]: duplicate format %s", i, r.Format)
		}
		seen[r.Format] = true
		if r.SizeBytes == 0 {
			return fmt.Errorf("ladder[%d]: size_bytes must be positive", i)
		}
		if r.SSIM < 0 || r.SSIM > 1 {
			return fmt.Errorf("ladder[%d]: ssim %g outside [0, 1]", i, r.SSIM)
		}
		if i == 0 {
			continue
		}
		// BOLA requires utility non-decreasing in size.
		prev := c.Ladder[i-1]
		if r.SizeBytes < prev.SizeBytes || r.SSIM < prev.SSIM {
			return fmt.Errorf("ladder[%d]: size and ssim must be non-decreasing", i)
		}
	}
	return nil
}

// Settings returns the buffer thresholds for the ABR algorithms.
func (c Config) Settings() algorithms.Settings {
	return algorithms.Settings{MinBufferS: c.MinBufferS, MaxBufferS: c.MaxBufferS}
}

// StaticChannel serves the configured ladder for every chunk.
func (c Config) StaticChannel(name string) (*channel.Static, error) {
	rungs := make([]channel.Rung, len(c.Ladder))
	for i, r := range c.Ladder {
		rungs[i] = channel.Rung{Format: r.Format, Chunk: channel.Chunk{Size: r.SizeBytes, SSIM: r.SSIM}}
	}
	return channel.NewStatic(name, c.ChunkDurationS, rungs)
}
