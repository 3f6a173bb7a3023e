// Package config handles tool configuration loading and management.
package config

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/meshtable/internal/logger"
	"github.com/Faultbox/meshtable/pkg/binio"
	"github.com/Faultbox/meshtable/pkg/formats"
)

// Config holds all tool settings.
type Config struct {
	Codec   CodecConfig   `yaml:"codec"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// CodecConfig selects how index-table records are encoded.
type CodecConfig struct {
	Format     string `yaml:"format"`     // DT, F, FT, F2nd or X
	Endianness string `yaml:"endianness"` // little or big
	Strip      bool   `yaml:"strip"`      // convert triangle lists to strips on build
}

// ExportConfig holds glTF export settings.
type ExportConfig struct {
	Binary bool `yaml:"binary"` // GLB instead of JSON glTF
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			Format:     formats.FormatX.String(),
			Endianness: binio.LittleEndian.String(),
			Strip:      true,
		},
		Export: ExportConfig{
			Binary: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// BinaryFormat parses the configured format name.
func (c CodecConfig) BinaryFormat() (formats.BinaryFormat, error) {
	return formats.ParseBinaryFormat(c.Format)
}

// ByteOrder parses the configured endianness.
func (c CodecConfig) ByteOrder() (binio.Endianness, error) {
	return binio.ParseEndianness(c.Endianness)
}

// Validate reports settings that cannot be parsed.
func (c *Config) Validate() error {
	if _, err := c.Codec.BinaryFormat(); err != nil {
		return errors.Wrap(err, "codec.format")
	}
	if _, err := c.Codec.ByteOrder(); err != nil {
		return errors.Wrap(err, "codec.endianness")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	return nil
}
