// Package logging builds the zap logger used across vogue. The terminal UI
// owns stdout, so records go to a rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options select the log destination and verbosity.
type Options struct {
	File  string // empty discards output
	Level string // debug | info | warn | error
	Mode  string // production uses JSON, anything else the console encoder
}

// New returns a logger and a cleanup func that flushes it.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	sink, err := openSink(opts.File)
	if err != nil {
		return nil, nil, err
	}

	var encoder zapcore.Encoder
	if opts.Mode == "production" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), level)
	logger := zap.New(core, zap.AddCaller())

	cleanup := func() {
		_ = logger.Sync()
		if closer, ok := sink.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return logger, cleanup, nil
}

func openSink(file string) (io.Writer, error) {
	if strings.TrimSpace(file) == "" {
		return io.Discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    16,
		MaxBackups: 3,
		MaxAge:     14,
	}, nil
}
