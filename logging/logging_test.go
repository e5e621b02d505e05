package logging_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treefind/treefind/logging"
)

func TestModuleWithoutLogger(t *testing.T) {
	l := logging.Module("mod1")(context.Background())
	require.NotNil(t, l)

	// all levels discard without panicking
	l.Debugf("debug %v", 1)
	l.Debugw("debug", "key", "value")
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestModuleWithLogger(t *testing.T) {
	var lines []string

	ctx := logging.WithLogger(context.Background(), logging.Printf(func(msg string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(msg, args...))
	}))

	l := logging.Module("mod1")(ctx)
	l.Infof("hello %v", 42)
	l.Debugw("structured", "key", "value", "n", 3)

	require.Equal(t, []string{
		"[mod1]hello 42",
		"[mod1]structured\t{\"key\":\"value\",\"n\":3}",
	}, lines)
}

func TestWithNilLogger(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), nil)

	l := logging.Module("mod1")(ctx)
	require.NotNil(t, l)
	l.Infof("discarded")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer

	ctx := logging.WithLogger(context.Background(), logging.ToWriter(&buf))

	l := logging.Module("mod1")(ctx)
	l.Infof("line %v", 1)
	l.Warnf("line %v", 2)

	require.Equal(t, "[mod1] line 1\n[mod1] line 2\n", buf.String())
}

func TestBroadcastTo(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	ctx := logging.WithLogger(context.Background(), logging.BroadcastTo(
		logging.ToWriter(&buf1),
		logging.ToWriter(&buf2),
	))

	l := logging.Module("mod1")(ctx)
	l.Infof("hello %v", 42)

	require.Equal(t, "[mod1] hello 42\n", buf1.String())
	require.Equal(t, buf1.String(), buf2.String())
}

func TestBroadcast(t *testing.T) {
	var l1, l2 []string

	b := logging.Broadcast{
		logging.Printf(func(msg string, args ...interface{}) {
			l1 = append(l1, fmt.Sprintf(msg, args...))
		})("m"),
		logging.Printf(func(msg string, args ...interface{}) {
			l2 = append(l2, fmt.Sprintf(msg, args...))
		})("m"),
	}

	b.Infof("hello")
	b.Errorf("bad %v", true)

	require.Equal(t, []string{"[m]hello", "[m]bad true"}, l1)
	require.Equal(t, l1, l2)
}

func TestWithPrefix(t *testing.T) {
	var lines []string

	inner := logging.Printf(func(msg string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(msg, args...))
	})("m")

	l := logging.WithPrefix("prefix:", inner)
	l.Infof("hello")
	l.Debugf("debug %v", 7)

	require.Equal(t, []string{"[m]prefix:hello", "[m]prefix:debug 7"}, lines)
}

func TestNullLogger(t *testing.T) {
	l := logging.NullLogger()
	require.NotNil(t, l)
	l.Infof("discarded %v", 1)
	l.Debugw("discarded", "k", "v")
}
