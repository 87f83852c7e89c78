package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2beens/evolvx/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLevel     = logrus.InfoLevel
	logFileMaxSizeMB = 50
	logFileMaxAge    = 14 // days
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the standard logrus logger. The returned func closes the rotating
// log file, if any, and must be called on shutdown.
func Setup(params LoggerSetupParams) func() {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := ParseLevel(params.LogLevel)
	if err != nil {
		logrus.Warnf("%s, falling back to %s", err, level)
	}
	logrus.SetLevel(level)

	logrus.AddHook(NewFieldsHook(logrus.Fields{
		"service": params.SentryServerName,
		"env":     params.Environment,
	}))

	if params.SentryEnabled {
		setupSentry(params)
	}

	output, closer := logOutput(params.LogFileName, params.LogToStdout)
	logrus.SetOutput(output)

	return func() {
		if closer == nil {
			return
		}
		if err := closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %s\n", err)
		}
	}
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}
	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up successfully")
}

// logOutput writes to stdout when no file is set, otherwise to a rotating file,
// optionally mirrored to stdout.
func logOutput(fileName string, toStdout bool) (io.Writer, io.Closer) {
	if fileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout, nil
	}

	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotating := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   logFileMaxSizeMB,
		MaxAge:    logFileMaxAge,
		LocalTime: false, // UTC
		Compress:  true,
	}

	if toStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, rotating), rotating
	}
	return rotating, rotating
}

// ParseLevel parses a level name, case-insensitively. Unknown or empty names yield
// the info level together with an error.
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return defaultLevel, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return defaultLevel, fmt.Errorf("invalid log level [%s]", level)
	}
	return parsed, nil
}

// FieldsHook adds a fixed set of fields to every entry that does not set them itself.
type FieldsHook struct {
	fields logrus.Fields
}

func NewFieldsHook(fields logrus.Fields) *FieldsHook {
	nonEmpty := logrus.Fields{}
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		nonEmpty[k] = v
	}
	return &FieldsHook{fields: nonEmpty}
}

func (h *FieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, set := entry.Data[k]; !set {
			entry.Data[k] = v
		}
	}
	return nil
}
