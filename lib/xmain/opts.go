package xmain

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
	"oss.terrastruct.com/xos"
)

// Opts registers flags that fall back to environment variables.
// A set environment variable replaces the flag's default; the flag itself still wins.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env

	// flag name -> env key, in registration order
	envKeys map[string]string
	order   []string
}

func NewOpts(env *xos.Env, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:    args,
		Flags:   flags,
		env:     env,
		envKeys: make(map[string]string),
	}
}

// Parse parses Args and returns the positional arguments. Parse errors come back as
// UsageError; a help request comes back as pflag.ErrHelp.
func (o *Opts) Parse() ([]string, error) {
	err := o.Flags.Parse(o.Args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil, err
	}
	if err != nil {
		return nil, UsageErrorf("failed to parse flags: %v", err)
	}
	return o.Flags.Args(), nil
}

// IsSet reports whether flag was passed or its environment variable is set.
func (o *Opts) IsSet(flag string) bool {
	if k, ok := o.envKeys[flag]; ok && o.env.Getenv(k) != "" {
		return true
	}
	f := o.Flags.Lookup(flag)
	return f != nil && f.Changed
}

// Defaults returns the flag usage block followed by the environment variables the flags read.
func (o *Opts) Defaults() string {
	b := &strings.Builder{}
	b.WriteString(o.Flags.FlagUsages())

	if len(o.order) > 0 {
		b.WriteString("\nYou may persistently set the following as environment variables (flags take precedent):\n")
		lines := make([]string, 0, len(o.order))
		for _, flag := range o.order {
			lines = append(lines, fmt.Sprintf("- $%s (--%s)", o.envKeys[flag], flag))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

func (o *Opts) lookupEnv(envKey, flag string) string {
	if envKey == "" {
		return ""
	}
	if _, ok := o.envKeys[flag]; !ok {
		o.order = append(o.order, flag)
	}
	o.envKeys[flag] = envKey
	return o.env.Getenv(envKey)
}

func (o *Opts) Float64(envKey, flag, shortFlag string, defaultVal float64, usage string) (*float64, error) {
	if env := o.lookupEnv(envKey, flag); env != "" {
		v, err := strconv.ParseFloat(env, 64)
		if err != nil {
			return nil, fmt.Errorf(`invalid environment variable %s. Expected a number. Found "%v".`, envKey, env)
		}
		defaultVal = v
	}
	return o.Flags.Float64P(flag, shortFlag, defaultVal, usage), nil
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if env := o.lookupEnv(envKey, flag); env != "" {
		defaultVal = env
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

// Enum is a String restricted to choices. An empty value means unset.
// The environment variable is checked at registration, the flag by Parse.
func (o *Opts) Enum(envKey, flag, shortFlag string, choices []string, usage string) (*string, error) {
	usage = fmt.Sprintf("%s (one of %s)", usage, strings.Join(choices, ", "))
	env := o.lookupEnv(envKey, flag)
	if env != "" && !slices.Contains(choices, env) {
		return nil, fmt.Errorf(`invalid environment variable %s. Expected one of %s. Found "%s".`, envKey, strings.Join(choices, ", "), env)
	}
	v := &enumValue{choices: choices, value: env}
	o.Flags.VarP(v, flag, shortFlag, usage)
	return &v.value, nil
}

func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	if env := o.lookupEnv(envKey, flag); env != "" {
		switch env {
		case "1", "true":
			defaultVal = true
		case "0", "false":
			defaultVal = false
		default:
			return nil, fmt.Errorf(`invalid environment variable %s. Expected bool. Found "%s".`, envKey, env)
		}
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}

type enumValue struct {
	choices []string
	value   string
}

func (v *enumValue) String() string {
	return v.value
}

func (v *enumValue) Set(s string) error {
	if !slices.Contains(v.choices, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(v.choices, ", "))
	}
	v.value = s
	return nil
}

func (v *enumValue) Type() string {
	return "string"
}

