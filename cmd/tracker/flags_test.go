package main

import (
	"errors"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("GMT+7", 7*3600)
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2025-09-01T10:00:00Z", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), false},
		{"date and time in display zone", "2025-09-01 17:00", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), false},
		{"date only", "2025-09-02", time.Date(2025, 9, 1, 17, 0, 0, 0, time.UTC), false},
		{"garbage", "yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.value, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubcommand(t *testing.T) {
	sub, rest, err := subcommand([]string{"add", "--minutes", "5"}, "add", "list")
	if err != nil || sub != "add" || len(rest) != 2 {
		t.Errorf("subcommand() = %q, %v, %v", sub, rest, err)
	}

	for _, args := range [][]string{nil, {"remove"}} {
		_, _, err := subcommand(args, "add", "list")
		var uerr usageError
		if !errors.As(err, &uerr) {
			t.Errorf("subcommand(%v) error = %v, want usageError", args, err)
		}
	}
}

func TestIDArg(t *testing.T) {
	tests := []struct {
		args    []string
		want    int64
		wantErr bool
	}{
		{[]string{"42"}, 42, false},
		{[]string{"0"}, 0, true},
		{[]string{"abc"}, 0, true},
		{[]string{}, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tt := range tests {
		fs := newFlagSet("test")
		_ = fs.Parse(tt.args)
		got, err := idArg(fs)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("idArg(%v) = %d, %v", tt.args, got, err)
		}
	}
}
