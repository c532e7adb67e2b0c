package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

// splitArgs separates flags from positional arguments so that negative
// numbers such as -113.49 are read as positionals rather than shorthand flags.
func splitArgs(fs *pflag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return flags, append(positional, args[i+1:]...)
		case isNumber(a):
			positional = append(positional, a)
		case strings.HasPrefix(a, "-") && len(a) > 1:
			flags = append(flags, a)
			if !strings.Contains(a, "=") && takesValue(fs, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, a)
		}
	}
	return flags, positional
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func takesValue(fs *pflag.FlagSet, arg string) bool {
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f = fs.Lookup(name)
	} else if name := arg[1:]; len(name) == 1 {
		f = fs.ShorthandLookup(name)
	}
	return f != nil && f.NoOptDefVal == ""
}

// parse parses args against fs and returns exactly want positionals.
func parse(fs *pflag.FlagSet, args []string, want int, names string) ([]string, error) {
	flags, positional := splitArgs(fs, args)
	if err := fs.Parse(flags); err != nil {
		if err == pflag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	positional = append(positional, fs.Args()...)
	if len(positional) != want {
		return nil, fmt.Errorf("%w: expected %s, got %d argument(s)", errUsage, names, len(positional))
	}
	return positional, nil
}

// floats converts positional arguments to numbers.
func floats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", errUsage, names[i], a)
		}
		out[i] = v
	}
	return out, nil
}

// centerArgs reads LAT LON RADIUS_KM.
func centerArgs(args []string) (geo.Point, float64, error) {
	v, err := floats(args, "LAT", "LON", "RADIUS_KM")
	if err != nil {
		return geo.Point{}, 0, err
	}
	return geo.NewPoint(v[0], v[1]), v[2], nil
}
