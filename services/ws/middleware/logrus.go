package middleware

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
)

//
// Logger
//

// Logger echo에서 출력하는 로그를 logrus로 출력한다.
type Logger struct {
	*logrus.Logger
}

func (l Logger) Output() io.Writer {
	return l.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

func (l Logger) Prefix() string {
	return ""
}

func (l Logger) SetPrefix(string) {
	// do nothing
}

func (l Logger) Level() log.Lvl {
	switch l.Logger.GetLevel() {
	case logrus.TraceLevel, logrus.DebugLevel:
		return log.DEBUG
	case logrus.InfoLevel:
		return log.INFO
	case logrus.WarnLevel:
		return log.WARN
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return log.ERROR
	}

	return log.OFF
}

func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(logrus.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(logrus.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(logrus.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(logrus.ErrorLevel)
	case log.OFF:
		l.Logger.SetLevel(logrus.PanicLevel)
	}
}

func (l Logger) SetHeader(string) {
	// do nothing
}

func (l Logger) Printj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Print()
}

func (l Logger) Debugj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Debug()
}

func (l Logger) Infoj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Info()
}

func (l Logger) Warnj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Warn()
}

func (l Logger) Errorj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Error()
}

func (l Logger) Fatalj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Fatal()
}

func (l Logger) Panicj(j log.JSON) {
	l.Logger.WithFields(logrus.Fields(j)).Panic()
}

// LogrusLogger 처리한 요청을 logrus로 기록하는 미들웨어
func LogrusLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:       true,
		LogRemoteIP:      true,
		LogHost:          true,
		LogMethod:        true,
		LogURI:           true,
		LogURIPath:       true,
		LogReferer:       true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,
		HandleError:      true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			path := v.URIPath
			if path == "" {
				path = "/"
			}

			bytesIn := v.ContentLength
			if bytesIn == "" {
				bytesIn = "0"
			}

			fields := logrus.Fields{
				"remote_ip":     v.RemoteIP,
				"host":          v.Host,
				"uri":           v.URI,
				"method":        v.Method,
				"path":          path,
				"referer":       v.Referer,
				"user_agent":    v.UserAgent,
				"status":        v.Status,
				"latency":       v.Latency.Microseconds(),
				"latency_human": v.Latency.String(),
				"bytes_in":      bytesIn,
				"bytes_out":     v.ResponseSize,
			}

			if v.Error != nil {
				logger.WithFields(fields).WithField("error", v.Error.Error()).Warn("echo log")
			} else {
				logger.WithFields(fields).Info("echo log")
			}

			return nil
		},
	})
}
