package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aacstudy-go/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Bootstrap returns a console-only logger for startup, before the
// configuration file has been read. Once config.Init has run, build the
// full logger with Init so the file cores pick up the configured
// directory and rotation limits.
func Bootstrap() *zap.Logger {
	return zap.New(newConsoleCore())
}

// Init initializes and returns a new zap logger.
func Init(projectRoot string) (*zap.Logger, error) {
	// Base encoder configuration for file logs (JSON format)
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	logDir := filepath.Join(projectRoot, logDirectory())

	// Create a core for each level, which writes ONLY that level to a file.
	var fileCores []zapcore.Core
	for _, level := range []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
	} {
		core, err := newFileCore(logDir, level, encoderConfig)
		if err != nil {
			return nil, err
		}
		fileCores = append(fileCores, core)
	}

	// Combine the file cores with a more readable console core. A log entry
	// is offered to all of them, and each decides whether to write it based
	// on its LevelEnabler.
	cores := append(fileCores, newConsoleCore())
	core := zapcore.NewTee(cores...)

	logger := zap.New(core, zap.AddCaller())
	return logger, nil
}

// newFileCore creates a core that writes a specific log level to a rotating file.
func newFileCore(logDir string, level zapcore.Level, encoderConfig zapcore.EncoderConfig) (zapcore.Core, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	// One log file per level, named like '2025-07-30-info.log'
	fileName := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", time.Now().Format("2006-01-02"), level.String()))

	maxSize, maxBackups, maxAge, compress := rotationSettings()
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
		MaxAge:     maxAge, // days
		Compress:   compress,
	})

	// This LevelEnablerFunc is the key to splitting logs. It ensures
	// that this core only handles logs of the exact specified level.
	levelEnabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == level
	})

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writer,
		levelEnabler,
	), nil
}

// newConsoleCore creates a core that writes to the console.
func newConsoleCore() zapcore.Core {
	// Log everything from Debug and above to the console.
	levelEnabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.DebugLevel
	})

	// Use a more human-readable encoder for the console.
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.AddSync(os.Stdout),
		levelEnabler,
	)
}

// logDirectory returns the configured log directory. The logger is
// initialized before the config package, so fall back to the default when
// config has not been loaded yet.
func logDirectory() string {
	if config.Conf != nil && config.Conf.Logging.Directory != "" {
		return config.Conf.Logging.Directory
	}
	return "logs"
}

func rotationSettings() (maxSize, maxBackups, maxAge int, compress bool) {
	if config.Conf != nil {
		lc := config.Conf.Logging
		return lc.MaxSize, lc.MaxBackups, lc.MaxAge, lc.Compress
	}
	return 10, 3, 7, true
}
