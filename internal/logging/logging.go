// Package logging builds the service's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config describes where and how much to log.
type Config struct {
	Env        string `yaml:"env" validate:"omitempty,oneof=development production"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" validate:"gte=0"`
	NoCaller   bool   `yaml:"no_caller"`
	Level      string `yaml:"level"`
}

// New builds a logger from cfg. Output goes to stderr unless a file name is
// set, in which case the file is rotated by size and age.
func New(cfg Config) (*zap.Logger, error) {
	var sink zapcore.WriteSyncer
	if cfg.FileName != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			LocalTime:  true,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}
	return NewWithSink(cfg, sink)
}

// NewWithSink builds a logger from cfg that writes to sink.
func NewWithSink(cfg Config, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	var encoderConfig zapcore.EncoderConfig
	var level zap.AtomicLevel

	if cfg.Env == EnvProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level.SetLevel(l)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	logger := zap.New(core)
	if !cfg.NoCaller {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger, nil
}
