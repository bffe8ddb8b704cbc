package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/funil/core"
)

// RollbarLogger reports to rollbar and mirrors every entry on a std logger.
type RollbarLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std, debug: conf.Debug}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// entry splits args into the first error and the merged extras; other values are kept under "args".
func entry(args []interface{}) (extras map[string]interface{}, err error) {
	extras = make(map[string]interface{})
	var rest []interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			if err == nil {
				err = v
				continue
			}
			rest = append(rest, v.Error())
		case map[string]interface{}:
			for key, val := range v {
				extras[key] = val
			}
		default:
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		extras["args"] = rest
	}
	return extras, err
}

// expected fmt: msg | error, map[string]interface{}
func (l RollbarLogger) prepare(msg string, err error, extras map[string]interface{}) []interface{} {
	rbArgs := []interface{}{msg}
	if err != nil {
		rbArgs = append(rbArgs, err)
	}
	if len(extras) > 0 {
		rbArgs = append(rbArgs, extras)
	}
	return rbArgs
}

func format(level, msg string, err error, extras map[string]interface{}) string {
	var sb strings.Builder
	sb.WriteString(level)
	sb.WriteString(" ")
	sb.WriteString(msg)
	if err != nil {
		fmt.Fprintf(&sb, " error=%q", err.Error())
	}
	keys := make([]string, 0, len(extras))
	for key := range extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&sb, " %s=%v", key, extras[key])
	}
	return sb.String()
}

func (l RollbarLogger) log(level string, send func(...interface{}), msg string, args []interface{}) {
	extras, err := entry(args)
	send(l.prepare(msg, err, extras)...)
	l.std.Println(format(level, msg, err, extras))
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log("INFO", rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log("WARN", rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log("ERROR", rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
