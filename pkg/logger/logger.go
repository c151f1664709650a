
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. In development mode logs go to
// stdout with a console encoder; otherwise JSON lines go to a rotated file.
type Options struct {
	Level       string
	Development bool
	File        string
}

var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

func New(opts Options) (*zap.Logger, error) {
	level, ok := levels[opts.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Development {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stdout),
			level,
		)
		return zap.New(core, zap.Development()), nil
	}

	file := opts.File
	if file == "" {
		file = "logs/pairpedia.log"
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(&lumberjack.Logger{
			Filename: file,
			MaxSize:  100, // MB
			MaxAge:   28,  // days
			Compress: true,
		}),
		level,
	)
	return zap.New(core), nil
}
