package xmain_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/flowchart/lib/xmain"
)

type buffer struct {
	bytes.Buffer
}

func (b *buffer) Close() error {
	return nil
}

func newState(env *xos.Env, args ...string) *xmain.State {
	if env == nil {
		env = xos.NewEnv(nil)
	}
	return xmain.NewState(append([]string{"cmd"}, args...), strings.NewReader(""), &buffer{}, &buffer{}, env)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		err     error
		expCode int
		expMsg  string
	}{
		{name: "nil", err: nil, expCode: 0},
		{name: "plain", err: errors.New("boom"), expCode: 1, expMsg: "boom"},
		{name: "exit", err: fmt.Errorf("wrapped: %w", xmain.ExitErrorf(3, "stop")), expCode: 3, expMsg: "stop"},
		{name: "usage", err: xmain.UsageErrorf("no input"), expCode: 2, expMsg: "bad usage: no input\nRun with --help to see usage."},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, msg := xmain.ExitCode(tc.err)
			assert.Equal(t, tc.expCode, code)
			assert.Equal(t, tc.expMsg, msg)
		})
	}
}

func TestOpts(t *testing.T) {
	t.Parallel()

	t.Run("env_default", func(t *testing.T) {
		t.Parallel()

		env := xos.NewEnv(nil)
		env.Setenv("GAP", "12.5")
		env.Setenv("LOUD", "true")
		ms := newState(env, "--quiet-gap=3", "in.yaml")

		gap, err := ms.Opts.Float64("GAP", "gap", "", 1, "")
		assert.NoError(t, err)
		quietGap, err := ms.Opts.Float64("QUIET_GAP", "quiet-gap", "", 1, "")
		assert.NoError(t, err)
		other, err := ms.Opts.Float64("OTHER", "other", "", 1, "")
		assert.NoError(t, err)
		loud, err := ms.Opts.Bool("LOUD", "loud", "", false, "")
		assert.NoError(t, err)

		args, err := ms.Opts.Parse()
		assert.NoError(t, err)
		assert.Equal(t, []string{"in.yaml"}, args)

		assert.Equal(t, 12.5, *gap)
		assert.Equal(t, 3., *quietGap)
		assert.Equal(t, 1., *other)
		assert.True(t, *loud)

		assert.True(t, ms.Opts.IsSet("gap"))
		assert.True(t, ms.Opts.IsSet("quiet-gap"))
		assert.False(t, ms.Opts.IsSet("other"))
		assert.False(t, ms.Opts.IsSet("missing"))

		defaults := ms.Opts.Defaults()
		assert.Contains(t, defaults, "- $GAP (--gap)")
		assert.Less(t, strings.Index(defaults, "$GAP"), strings.Index(defaults, "$LOUD"))
	})

	t.Run("bad_env", func(t *testing.T) {
		t.Parallel()

		env := xos.NewEnv(nil)
		env.Setenv("GAP", "wide")
		env.Setenv("LOUD", "yes")
		ms := newState(env)

		_, err := ms.Opts.Float64("GAP", "gap", "", 1, "")
		assert.Error(t, err)
		_, err = ms.Opts.Bool("LOUD", "loud", "", false, "")
		assert.Error(t, err)
	})

	t.Run("enum", func(t *testing.T) {
		t.Parallel()

		env := xos.NewEnv(nil)
		env.Setenv("SHAPE", "round")
		ms := newState(env, "--shape=square")
		shape, err := ms.Opts.Enum("SHAPE", "shape", "", []string{"round", "square"}, "outline")
		assert.NoError(t, err)
		_, err = ms.Opts.Parse()
		assert.NoError(t, err)
		assert.Equal(t, "square", *shape)
		assert.Contains(t, ms.Opts.Defaults(), "one of round, square")

		ms = newState(nil, "--shape=oval")
		_, err = ms.Opts.Enum("SHAPE", "shape", "", []string{"round", "square"}, "outline")
		assert.NoError(t, err)
		_, err = ms.Opts.Parse()
		var uerr xmain.UsageError
		assert.True(t, errors.As(err, &uerr), "%v", err)

		env = xos.NewEnv(nil)
		env.Setenv("SHAPE", "oval")
		_, err = newState(env).Opts.Enum("SHAPE", "shape", "", []string{"round", "square"}, "outline")
		assert.Error(t, err)

		unset, err := newState(nil).Opts.Enum("SHAPE", "shape", "", []string{"round"}, "outline")
		assert.NoError(t, err)
		assert.Equal(t, "", *unset)
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		ms := newState(nil, "--help")
		_, err := ms.Opts.Parse()
		assert.True(t, errors.Is(err, pflag.ErrHelp), "%v", err)
	})
}

func TestStateMain(t *testing.T) {
	t.Parallel()

	t.Run("returns", func(t *testing.T) {
		t.Parallel()

		ms := newState(nil)
		err := ms.Main(context.Background(), nil, func(ctx context.Context, ms *xmain.State) error {
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")
	})

	t.Run("signal_stops", func(t *testing.T) {
		t.Parallel()

		sigs := make(chan os.Signal, 1)
		sigs <- syscall.SIGTERM
		ms := newState(nil)
		err := ms.Main(context.Background(), sigs, func(ctx context.Context, ms *xmain.State) error {
			<-ctx.Done()
			return ctx.Err()
		})
		assert.NoError(t, err)
	})

	t.Run("signal_failure", func(t *testing.T) {
		t.Parallel()

		sigs := make(chan os.Signal, 1)
		sigs <- os.Interrupt
		ms := newState(nil)
		err := ms.Main(context.Background(), sigs, func(ctx context.Context, ms *xmain.State) error {
			<-ctx.Done()
			return errors.New("left a mess")
		})
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "failed to stop")
			assert.Contains(t, err.Error(), "left a mess")
		}
	})
}

func TestWritePath(t *testing.T) {
	t.Parallel()

	ms := newState(nil)
	fp := filepath.Join(t.TempDir(), "out", "nested", "chart.layout.json")
	assert.NoError(t, ms.WritePath(fp, []byte("{}")))
	b, err := os.ReadFile(fp)
	assert.NoError(t, err)
	assert.Equal(t, "{}", string(b))

	assert.NoError(t, ms.WritePath("-", []byte("out")))
	assert.Equal(t, "out", ms.Stdout.(*buffer).String())
}
