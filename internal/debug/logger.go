package debug

import (
	"log"
	"os"
)

// Logger gates verbose diagnostics behind a flag. When enabled it appends to
// ailife_debug.log so the TUI stays clean. A nil *Logger is safe to use.
type Logger struct {
	enabled bool
}

func NewLogger(enabled bool) *Logger {
	if enabled {
		logFile, err := os.OpenFile("ailife_debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(logFile)
		}
		log.Printf("=== DEBUG MODE ENABLED ===")
	}

	return &Logger{enabled: enabled}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d == nil || !d.enabled {
		return
	}
	log.Printf(format, args...)
}

func (d *Logger) Println(args ...interface{}) {
	if d == nil || !d.enabled {
		return
	}
	log.Println(args...)
}
