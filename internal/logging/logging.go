// Package logging configures the process logger. The terminal UI owns
// stdout, so records go to a rotating file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Filename   string // "-" is stderr, "" discards
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

type UTCFormatter struct {
	logrus.Formatter
}

func (u UTCFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}

// New builds a logger from cfg. The returned closer releases the log file.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(UTCFormatter{&logrus.TextFormatter{FullTimestamp: true, DisableColors: true}})

	level := logrus.InfoLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}
	log.SetLevel(level)

	switch cfg.Filename {
	case "":
		log.SetOutput(io.Discard)
		return log, nopCloser{}, nil
	case "-":
		log.SetOutput(os.Stderr)
		return log, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, nil, err
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  false,
	}
	log.SetOutput(lj)
	return log, lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
