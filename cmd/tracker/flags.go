package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ExitOnError)
}

// subcommand splits "add --x 1" into "add" and its flags
func subcommand(args []string, allowed ...string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, usageError("missing subcommand, want one of: " + strings.Join(allowed, ", "))
	}
	for _, a := range allowed {
		if args[0] == a {
			return args[0], args[1:], nil
		}
	}
	return "", nil, usageError(fmt.Sprintf("unknown subcommand %q, want one of: %s", args[0], strings.Join(allowed, ", ")))
}

// idArg reads the single positional id argument of fs
func idArg(fs *pflag.FlagSet) (int64, error) {
	if fs.NArg() != 1 {
		return 0, usageError("expected exactly one id")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(fmt.Sprintf("invalid id %q", fs.Arg(0)))
	}
	return id, nil
}

// parseTime accepts RFC 3339, "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in loc
func parseTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{dateTimeLayout, dateLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, usageError(fmt.Sprintf("cannot parse time %q", value))
}

func optionalTime(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseTime(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateTimeLayout)
}

func formatOptionalTime(t *time.Time, loc *time.Location, layout string) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(layout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
