// Package actionlog records security- and business-relevant events to a
// dedicated rotating log file. Recording is best-effort: a slow or failing
// sink never blocks or fails the operation being logged.
package actionlog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Event names written by the handlers and services.
const (
	EventRegister           = "register"
	EventLogin              = "login"
	EventLoginFailed        = "login_failed"
	EventLogout             = "logout"
	EventNoteCreated        = "note_created"
	EventNoteUpdated        = "note_updated"
	EventNoteDeleted        = "note_deleted"
	EventProfileUpdated     = "profile_updated"
	EventAvatarUploaded     = "avatar_uploaded"
	EventAvatarDeleted      = "avatar_deleted"
	EventRateLimited        = "rate_limited"
	EventUnauthorizedAccess = "unauthorized_access"
	EventLogsDownloaded     = "logs_downloaded"
)

type entry struct {
	event  string
	fields logrus.Fields
}

type Logger struct {
	log     *logrus.Logger
	entries chan entry
	done    chan struct{}
}

// New builds a logger writing JSON lines to cfg.ActionFile with rotation.
func New(cfg config.LogConfig) *Logger {
	if cfg.ActionFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.ActionFile), 0755); err != nil {
			logrus.WithError(err).Warn("failed to create action log directory")
		}
	}

	var out io.Writer = os.Stdout
	if cfg.ActionFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.ActionFile,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   true,
		}
	}

	return NewWithOutput(out)
}

// NewWithOutput is used by tests to capture entries.
func NewWithOutput(out io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{
		log:     log,
		entries: make(chan entry, 256),
		done:    make(chan struct{}),
	}

	go l.run()

	return l
}

// Record queues one event. It never blocks: when the queue is full the
// event is dropped.
func (l *Logger) Record(event string, fields logrus.Fields) {
	select {
	case l.entries <- entry{event: event, fields: fields}:
	default:
	}
}

func (l *Logger) run() {
	defer close(l.done)
	for e := range l.entries {
		l.log.WithFields(e.fields).Info(e.event)
	}
}

// Close drains the queue and stops the writer goroutine. Record must not
// be called after Close.
func (l *Logger) Close() {
	close(l.entries)
	<-l.done
}
