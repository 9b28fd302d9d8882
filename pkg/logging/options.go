package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the minimum severity a logger emits.
type Level = logrus.Level

// Severity levels, most to least verbose.
const (
	LevelDebug    Level = logrus.DebugLevel
	LevelInfo     Level = logrus.InfoLevel
	LevelWarning  Level = logrus.WarnLevel
	LevelError    Level = logrus.ErrorLevel
	LevelCritical Level = logrus.FatalLevel
)

// ParseLevel converts a level name ("debug", "info", "warning", "error",
// "critical") into a Level.
func ParseLevel(name string) (Level, error) {
	if strings.EqualFold(name, "critical") {
		return LevelCritical, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// FormatStyle selects the entry layout.
type FormatStyle string

const (
	// FormatSimple emits timestamp, logger name, level and message.
	FormatSimple FormatStyle = "simple"

	// FormatDetailed additionally records the calling file, line and
	// function of each entry.
	FormatDetailed FormatStyle = "detailed"
)

// Defaults applied by Options resolution.
const (
	DefaultLogDir     = "logs"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 5
)

// Options configures a Logger. The zero value enables both sinks with
// info level, detailed format, a "logs" directory, 10 MB rotation and
// 5 retained backups.
type Options struct {
	// Dir is the directory for log files. Empty means DefaultLogDir.
	Dir string

	// Level is the minimum severity to emit. Zero means info.
	Level Level

	// Format selects the entry layout. Empty means FormatDetailed.
	Format FormatStyle

	// Console controls the stderr sink. Nil means enabled.
	Console *bool

	// File controls the rotating file sink. Nil means enabled.
	File *bool

	// MaxSizeMB is the size in megabytes at which the active log file
	// is rotated into the backup ring. Zero means DefaultMaxSizeMB.
	MaxSizeMB int

	// MaxBackups bounds the backup ring; the oldest backup beyond this
	// count is evicted on rotation. Zero means DefaultMaxBackups.
	MaxBackups int
}

func (o Options) dir() string {
	if o.Dir == "" {
		return DefaultLogDir
	}
	return o.Dir
}

func (o Options) level() Level {
	if o.Level == 0 {
		return LevelInfo
	}
	return o.Level
}

func (o Options) format() FormatStyle {
	if o.Format == "" {
		return FormatDetailed
	}
	return o.Format
}

func (o Options) consoleEnabled() bool {
	return o.Console == nil || *o.Console
}

func (o Options) fileEnabled() bool {
	return o.File == nil || *o.File
}

func (o Options) maxSizeMB() int {
	if o.MaxSizeMB <= 0 {
		return DefaultMaxSizeMB
	}
	return o.MaxSizeMB
}

func (o Options) maxBackups() int {
	if o.MaxBackups <= 0 {
		return DefaultMaxBackups
	}
	return o.MaxBackups
}

// Bool returns a pointer to b, for setting Options.Console and
// Options.File explicitly.
func Bool(b bool) *bool {
	return &b
}
