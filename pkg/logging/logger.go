package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a named logger with console and/or rotating-file output.
// Every emit method delegates to the configured sinks; there is no
// state beyond the attached sinks and the current level.
type Logger struct {
	name string
	log  *logrus.Logger
	file *lumberjack.Logger
}

// New builds a logger from opts. Each call constructs a fresh underlying
// logger, so reconfiguring a name never duplicates output to stale
// sinks. Use a Registry (or the package-level Get) when the same logical
// logger should be shared.
//
// The file sink writes <dir>/<name-lowercased>_<YYYYMMDD>.log and
// rotates by size: when the active file reaches MaxSizeMB it is renamed
// into the backup ring and a fresh file is opened, evicting the oldest
// backup beyond MaxBackups.
func New(name string, opts Options) (*Logger, error) {
	logger := logrus.New()
	logger.SetLevel(opts.level())
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if opts.format() == FormatDetailed {
		logger.SetReportCaller(true)
	}

	var (
		writers []io.Writer
		file    *lumberjack.Logger
	)

	if opts.consoleEnabled() {
		writers = append(writers, os.Stderr)
	}

	if opts.fileEnabled() {
		dir := opts.dir()
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}

		filename := fmt.Sprintf("%s_%s.log", strings.ToLower(name), time.Now().Format("20060102"))
		file = &lumberjack.Logger{
			Filename:   filepath.Join(dir, filename),
			MaxSize:    opts.maxSizeMB(),
			MaxBackups: opts.maxBackups(),
		}
		writers = append(writers, file)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return &Logger{name: name, log: logger, file: file}, nil
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// FilePath returns the active log file path, or empty when the file
// sink is disabled.
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Filename
}

// SetLevel changes the minimum severity. The new threshold applies to
// every attached sink.
func (l *Logger) SetLevel(level Level) {
	l.log.SetLevel(level)
}

// Level returns the current minimum severity.
func (l *Logger) Level() Level {
	return l.log.GetLevel()
}

// Underlying exposes the wrapped logrus logger for integration with
// libraries that accept one.
func (l *Logger) Underlying() *logrus.Logger {
	return l.log
}

// entry attaches the logger name to each emitted record.
func (l *Logger) entry() *logrus.Entry {
	return l.log.WithField("logger", l.name)
}

// Debug logs at debug level.
func (l *Logger) Debug(args ...interface{}) {
	l.entry().Debug(args...)
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry().Debugf(format, args...)
}

// Info logs at info level.
func (l *Logger) Info(args ...interface{}) {
	l.entry().Info(args...)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry().Infof(format, args...)
}

// Warning logs at warning level.
func (l *Logger) Warning(args ...interface{}) {
	l.entry().Warn(args...)
}

// Warningf logs a formatted message at warning level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

// Error logs at error level.
func (l *Logger) Error(args ...interface{}) {
	l.entry().Error(args...)
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

// Critical logs at critical severity. Unlike logrus's Fatal helpers it
// never exits the process.
func (l *Logger) Critical(args ...interface{}) {
	l.entry().Log(LevelCritical, args...)
}

// Criticalf logs a formatted message at critical severity.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.entry().Logf(LevelCritical, format, args...)
}

// Exception logs err at error level together with a message, attaching
// the error as a structured field.
func (l *Logger) Exception(err error, args ...interface{}) {
	l.entry().WithError(err).Error(args...)
}

// Close flushes and closes the file sink. Safe to call when the file
// sink is disabled.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
