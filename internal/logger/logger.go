// Package logger is the server's structured logger: zerolog lines on stdout, optionally
// mirrored to a size-rotated file. A nil *Logger is valid and drops everything.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for Options.File.
const (
	rotateMaxSizeMB  = 10
	rotateMaxBackups = 5
	rotateMaxAgeDays = 30
)

// Options selects level, line format and sinks.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Format is "json" (default) or "console".
	Format string
	// Writer receives every line; nil means stdout.
	Writer io.Writer
	// File also receives JSON lines, rotated by lumberjack.
	File string
}

// Logger is the handle passed through the server, the reveal tracker and the typeface loader.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from opts. It fails only on an unknown level name.
func New(opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = lvl
	}

	zl := zerolog.New(output(opts)).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}, nil
}

func output(opts Options) io.Writer {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		cw := zerolog.NewConsoleWriter()
		cw.Out = w
		cw.TimeFormat = time.RFC3339
		w = cw
	}
	if opts.File == "" {
		return w
	}
	return zerolog.MultiLevelWriter(w, &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    rotateMaxSizeMB,
		MaxBackups: rotateMaxBackups,
		MaxAge:     rotateMaxAgeDays,
		Compress:   true,
	})
}

// Nop is the logger tests hand to components.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithFields is a child logger stamping every line with fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

// With is WithFields for one string field, e.g. the request id.
func (l *Logger) With(key, value string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog hands out the underlying logger for typed fields (status codes, latencies).
func (l *Logger) Zerolog() *zerolog.Logger {
	if l == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return &l.zl
}

func (l *Logger) Info(msg string)  { l.emit(zerolog.InfoLevel, nil, msg) }
func (l *Logger) Debug(msg string) { l.emit(zerolog.DebugLevel, nil, msg) }
func (l *Logger) Warn(msg string)  { l.emit(zerolog.WarnLevel, nil, msg) }

// Error logs msg with err attached under "error"; err may be nil.
func (l *Logger) Error(err error, msg string) { l.emit(zerolog.ErrorLevel, err, msg) }

func (l *Logger) emit(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	ev := l.zl.WithLevel(level)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}
