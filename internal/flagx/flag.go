// Package flagx lets several parsers share one argument vector: the config
// loader picks out the flags it owns, and the command tree receives the rest.
package flagx

import (
	"flag"
	"strings"
)

// partition splits args into the occurrences of owned flags (with their
// values) and everything else, preserving order on both sides.
//
// Recognised forms are "-name value", "--name value", "-name=value" and
// "--name=value". A value is taken from the next argument only when that
// argument does not itself start with "-". Everything after a bare "--" is
// left untouched.
func partition(args []string, owned []string) (kept, rest []string) {
	set := make(map[string]struct{}, len(owned))
	for _, f := range owned {
		set[strings.TrimLeft(f, "-")] = struct{}{}
	}

	kept = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := set[name]; !ok {
			rest = append(rest, arg)
			continue
		}

		kept = append(kept, arg)
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept, rest
}

// FilterArgs returns only the owned flags and their values.
//
//	FilterArgs([]string{"-a", "http://x", "files", "list"}, []string{"-a"})
//	// []string{"-a", "http://x"}
func FilterArgs(args []string, owned []string) []string {
	kept, _ := partition(args, owned)
	return kept
}

// StripArgs is the complement of FilterArgs: it removes the owned flags and
// their values and returns what is left for the next parser.
func StripArgs(args []string, owned []string) []string {
	_, rest := partition(args, owned)
	return rest
}

// ConfigFileFlags are the flags that name a configuration file.
var ConfigFileFlags = []string{"-c", "-config"}

// ConfigFile extracts the configuration file path given with -c or -config.
// It returns an empty string when neither is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
