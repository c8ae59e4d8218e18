package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config mirrors config.LoggerConfig but avoids importing the config package here.
type Config struct {
	Level    string
	Encoding string
	// File is appended to when set; otherwise Fallback (or stderr) receives logs.
	File     string
	Fallback io.Writer
}

// New builds a zap.Logger using the provided configuration. The returned
// close func releases the log file, if one was opened.
func New(cfg Config) (*zap.Logger, func() error, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		// fall back to info level if parsing fails
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	closeFn := func() error { return nil }
	var sink io.Writer = os.Stderr
	if cfg.Fallback != nil {
		sink = cfg.Fallback
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		sink = f
		closeFn = f.Close
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(sink)),
		level,
	)

	return zap.New(core, zap.AddCaller()), closeFn, nil
}

// ForTUI returns a logger that never writes to the terminal: a file logger
// when cfg.File is set, a no-op logger otherwise.
func ForTUI(cfg Config) (*zap.Logger, func() error, error) {
	if cfg.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	return New(cfg)
}
