// Package persist: functional configuration for snapshot I/O.
package persist

import "log/slog"

const (
	// MinCompressionLevel and MaxCompressionLevel bound the accepted zstd
	// levels on the standard zstd scale (1 fastest … 22 strongest).
	MinCompressionLevel = 1
	MaxCompressionLevel = 22

	// DefaultCompressionLevel balances ratio and speed for snapshot-sized
	// payloads.
	DefaultCompressionLevel = 3
)

const panicCompressionLevel = "persist: WithCompression: level must be in [1,22]"

// Option mutates snapshot configuration.
type Option func(*Options)

// Options stores the effective configuration after applying setters.
type Options struct {
	compress bool         // write the payload as one zstd frame
	level    int          // zstd level when compress is set
	logger   *slog.Logger // nil keeps the package silent
}

// WithCompression enables zstd compression of the payload at the given
// level. On Load compression is detected from the header, so the option
// only matters when writing.
// Panics outside [MinCompressionLevel, MaxCompressionLevel].
func WithCompression(level int) Option {
	if level < MinCompressionLevel || level > MaxCompressionLevel {
		panic(panicCompressionLevel)
	}
	return func(o *Options) {
		o.compress = true
		o.level = level
	}
}

// WithLogger attaches a structured logger for save/load outcomes. Pass nil
// to keep the package silent (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// gatherOptions resolves setters over defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		compress: false,
		level:    DefaultCompressionLevel,
		logger:   nil,
	}
	for _, set := range user {
		set(&o)
	}
	return o
}
