// internal/logger/logger.go
//
// Structured logger (Zap + Lumberjack).
//
// Context
// -------
// The resolver reports every degraded source through a zap
// SugaredLogger.  When the embedding binary is given a log directory we
// write one JSON log per day under `<dir>/YYYY-MM-DD.log`; the console
// core goes to stderr so stdout stays reserved for command output.
// Rotation, compression, and retention are handled by Lumberjack.
//
// Usage
// -----
//
//	log, err := logger.New(dir, runningInTTY(), zapcore.InfoLevel)
//	if err != nil { … }
//	log.Infow("config resolved", "keys", n)
//
// Notes
// -----
// • Zap core uses ISO-8601 timestamps and lowercase levels.
// • An empty dir builds the console core only, regardless of tee.
// • Oxford commas, two spaces after periods.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a *zap.SugaredLogger at level.  With dir set, JSON goes to
// dir/YYYY-MM-DD.log and, when tee == true, a console core is attached
// too.  The logger is installed as the process-wide default via
// zap.ReplaceGlobals.
func New(dir string, tee bool, level zapcore.Level) (*zap.SugaredLogger, error) {
	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	stderr := zapcore.Lock(os.Stderr)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), stderr, level)

	if dir == "" {
		z := zap.New(consoleCore, zap.ErrorOutput(stderr)).Sugar()
		zap.ReplaceGlobals(z.Desugar())
		return z, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fileName := time.Now().Format("2006-01-02") + ".log"
	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, fileName),
		MaxSize:    50, // MB
		MaxBackups: 7,  // keep last seven files
		MaxAge:     14, // days
		Compress:   true,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level),
	}
	if tee {
		cores = append(cores, consoleCore)
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.ErrorOutput(zapcore.AddSync(fileSink)),
	).Sugar()

	zap.ReplaceGlobals(z.Desugar())

	z.Debugw("logger online", "dir", dir, "tee", tee)
	return z, nil
}

// ParseLevel accepts zap level names ("debug", "info", …).  An empty
// string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(s)
}
