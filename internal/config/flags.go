package config

import "flag"

// Flags are the command-line overrides shared by every subcommand.
type Flags struct {
	config     *string
	debug      *bool
	logFile    *string
	format     *string
	endianness *string
	noStrip    *bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		logFile:    fs.String("log-file", "", "Also log to this file"),
		format:     fs.String("format", "", "Binary format: DT, F, FT, F2nd or X"),
		endianness: fs.String("endian", "", "Byte order: little or big"),
		noStrip:    fs.Bool("no-strip", false, "Keep triangle lists instead of generating strips"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
	if *f.format != "" {
		cfg.Codec.Format = *f.format
	}
	if *f.endianness != "" {
		cfg.Codec.Endianness = *f.endianness
	}
	if *f.noStrip {
		cfg.Codec.Strip = false
	}
}
