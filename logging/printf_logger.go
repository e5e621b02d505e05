package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type printfLogger struct {
	printf func(msg string, args ...interface{})
	prefix string
}

func (l *printfLogger) Debugf(msg string, args ...interface{}) { l.printf(l.prefix+msg, args...) }
func (l *printfLogger) Infof(msg string, args ...interface{})  { l.printf(l.prefix+msg, args...) }
func (l *printfLogger) Warnf(msg string, args ...interface{})  { l.printf(l.prefix+msg, args...) }
func (l *printfLogger) Errorf(msg string, args ...interface{}) { l.printf(l.prefix+msg, args...) }

func (l *printfLogger) Debugw(msg string, keyValuePairs ...interface{}) {
	l.printf(l.prefix + msg + "\t" + formatKeyValuePairs(keyValuePairs))
}

// Printf returns LoggerForModuleFunc that uses given printf-style function to print log output.
func Printf(printf func(msg string, args ...interface{})) LoggerForModuleFunc {
	return func(module string) Logger {
		return &printfLogger{printf, "[" + module + "]"}
	}
}

// ToWriter returns LoggerForModuleFunc that writes log lines prefixed
// with the module name to the provided writer.
func ToWriter(w io.Writer) LoggerForModuleFunc {
	return func(module string) Logger {
		return WithPrefix("["+module+"] ", &printfLogger{func(msg string, args ...interface{}) {
			fmt.Fprintf(w, msg+"\n", args...) //nolint:errcheck
		}, ""})
	}
}

func formatKeyValuePairs(keyValuePairs []interface{}) string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i := 0; i+1 < len(keyValuePairs); i += 2 {
		if i > 0 {
			sb.WriteByte(',')
		}

		key, ok := keyValuePairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keyValuePairs[i])
		}

		v, err := json.Marshal(keyValuePairs[i+1])
		if err != nil {
			v = []byte(fmt.Sprintf("%q", fmt.Sprintf("%v", keyValuePairs[i+1])))
		}

		fmt.Fprintf(&sb, "%q:%s", key, v)
	}

	sb.WriteByte('}')

	return sb.String()
}
