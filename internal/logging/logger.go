package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kingrea/goal-lattice/internal/config"
)

// Logger appends JSON lines to .goals/logs/goals.log (or the configured file)
// so store activity can be inspected after the process exits.
type Logger struct {
	*zap.Logger
	file *os.File
}

// New creates (or reuses) the log file for the configured project.
func New(cfg *config.Config) (*Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("logging: config is required")
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel())
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), level)
	return &Logger{Logger: zap.New(core), file: f}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Close flushes buffered entries and releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = l.Logger.Sync()
	return l.file.Close()
}
