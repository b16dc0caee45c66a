// Package logger builds the slog loggers used by the binaries. Libraries
// receive a *slog.Logger; only cmd/ reaches for the process-wide one.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oggyb/campus-match/internal/config"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Config struct {
	Level      string
	Format     Format
	Component  string
	WithSource bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var global atomic.Pointer[slog.Logger]

// InitFromConfig installs the process logger described by the LOG_* settings
// and returns it.
func InitFromConfig(c *config.Config) *slog.Logger {
	lc := Config{Level: "info", Format: FormatText}
	if c != nil {
		lc = Config{
			Level:      c.Log.Level,
			Format:     Format(c.Log.Format),
			Component:  c.Log.Component,
			WithSource: c.Log.Source,
		}
	}
	return Init(lc)
}

// Init replaces the process logger.
func Init(c Config) *slog.Logger {
	l := New(c)
	global.Store(l)
	return l
}

// L returns the process logger, an info-level text logger until Init runs.
func L() *slog.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return Init(Config{Level: "info", Format: FormatText})
}

func Error(msg string, args ...any) { L().Error(msg, args...) }

// New builds a standalone logger without touching the process one.
func New(c Config) *slog.Logger {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: parseLevel(c.Level), AddSource: c.WithSource}

	var h slog.Handler = slog.NewTextHandler(out, opts)
	if Format(strings.ToLower(string(c.Format))) == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	}

	l := slog.New(h)
	if c.Component != "" {
		l = l.With("component", c.Component)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Since renders the time elapsed since start as a duration_ms attr.
func Since(start time.Time) slog.Attr {
	return slog.Int64("duration_ms", time.Since(start).Milliseconds())
}

// parseLevel accepts slog level names ("debug", "WARN", "info+2");
// anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
