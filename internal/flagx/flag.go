// Package flagx holds small helpers for reading a subset of command-line
// flags without owning the whole argument list.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments from args that belong to allowedFlags,
// together with their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// A value is only consumed when the next argument does not start with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// stringFlag extracts the value of a string flag known under a short and a
// long name. The last occurrence wins; an absent flag yields "".
func stringFlag(args []string, short, long, usage string) string {
	var v string

	filtered := FilterArgs(args, []string{"-" + short, "-" + long})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&v, long, "", usage)
	fs.StringVar(&v, short, "", usage+" (short)")
	_ = fs.Parse(filtered)

	return v
}

// ConfigFileFlag returns the JSON config path given via -c or -config.
func ConfigFileFlag(args []string) string {
	return stringFlag(args, "c", "config", "path to config file")
}

// EnvFileFlag returns the dotenv path given via -e or -env.
func EnvFileFlag(args []string) string {
	return stringFlag(args, "e", "env", "path to .env file")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
