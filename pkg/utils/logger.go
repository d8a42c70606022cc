package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes diagnostics to a rotating file under the state dir. Nothing
// it receives is echoed to the terminal; the interactive screen belongs to
// the renderer alone.
type Logger struct {
	logger        *log.Logger
	jsonMode      bool
	correlationID string
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton logger, creating ~/.gpt-cli/gpt-cli.log
// on first use.
func GetLogger() *Logger {
	once.Do(func() {
		logFile := &lumberjack.Logger{
			Filename:   logPath(),
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		globalLogger = &Logger{
			logger: log.New(logFile, "", log.LstdFlags),
		}
		if os.Getenv("GPT_JSON_LOGS") == "1" {
			globalLogger.jsonMode = true
		}
		if cid := os.Getenv("GPT_CORRELATION_ID"); cid != "" {
			globalLogger.correlationID = cid
		}
	})
	return globalLogger
}

func logPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gpt-cli.log"
	}
	return filepath.Join(home, ".gpt-cli", "gpt-cli.log")
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	if logFile, ok := l.logger.Writer().(*lumberjack.Logger); ok {
		return logFile.Close()
	}
	return nil
}

// Log writes a general message.
func (l *Logger) Log(message string) {
	if l.jsonMode {
		_ = json.NewEncoder(l.logger.Writer()).Encode(map[string]any{"level": "info", "msg": message, "cid": l.correlationID})
		return
	}
	l.logger.Print(message)
}

// Logf writes a formatted message.
func (l *Logger) Logf(format string, v ...interface{}) {
	if l.jsonMode {
		l.Log(fmt.Sprintf(format, v...))
		return
	}
	l.logger.Printf(format, v...)
}

// LogError records an error.
func (l *Logger) LogError(err error) {
	if l.jsonMode {
		_ = json.NewEncoder(l.logger.Writer()).Encode(map[string]any{"level": "error", "error": err.Error(), "cid": l.correlationID})
		return
	}
	l.logger.Printf("Error: %s", err)
}
