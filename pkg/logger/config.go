package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger settings read from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
	File   FileConfig
}

// FileConfig describes an optional rotating log file.
type FileConfig struct {
	Path       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" envDefault:"30"`
	Compress   bool   `env:"LOG_FILE_COMPRESS" envDefault:"true"`
}

func (fc FileConfig) writer() io.Writer {
	return &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}
}
