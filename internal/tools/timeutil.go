package tools

import (
	"context"
	"math"
	"time"

	"mcptoolkit/internal/registry"
)

// isoLayouts are tried in order when parsing ISO-8601 style timestamps.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// GetCurrentTimeInput optionally selects a timezone.
type GetCurrentTimeInput struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA timezone name, defaults to the local zone."`
}

// GetCurrentTime reports the current instant in several renderings:
// ISO timestamp, date, clock time, weekday, and epoch seconds.
func GetCurrentTime(ctx context.Context, in GetCurrentTimeInput) registry.Envelope {
	tz := in.Timezone
	if tz == "" {
		tz = "local"
	}
	loc := time.Local
	if tz != "local" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return registry.Failf("unknown timezone %q: %v", tz, err)
		}
	}

	now := time.Now().In(loc)
	return registry.Envelope{
		"current_time": now.Format(time.RFC3339Nano),
		"date":         now.Format("2006-01-02"),
		"time":         now.Format("15:04:05"),
		"day_of_week":  now.Weekday().String(),
		"timezone":     tz,
		"timestamp":    float64(now.UnixNano()) / float64(time.Second),
	}
}

// TimeDifferenceInput is a pair of timestamps and an optional parse
// layout. The default "iso" accepts ISO-8601 forms; anything else is
// treated as a Go reference layout applied to both endpoints.
type TimeDifferenceInput struct {
	StartTime string `json:"start_time" jsonschema:"Start timestamp."`
	EndTime   string `json:"end_time" jsonschema:"End timestamp."`
	Format    string `json:"format,omitempty" jsonschema:"Parse layout, iso (default) or a Go reference layout."`
}

// CalculateTimeDifference computes the signed elapsed time between two
// timestamps and reports it in seconds, minutes, hours, whole days, and a
// human-readable duration string.
func CalculateTimeDifference(ctx context.Context, in TimeDifferenceInput) registry.Envelope {
	format := in.Format
	if format == "" {
		format = "iso"
	}

	start, err := parseTimestamp(in.StartTime, format)
	if err != nil {
		return registry.Failf("parsing start_time %q: %v", in.StartTime, err)
	}
	end, err := parseTimestamp(in.EndTime, format)
	if err != nil {
		return registry.Failf("parsing end_time %q: %v", in.EndTime, err)
	}

	diff := end.Sub(start)
	seconds := diff.Seconds()
	return registry.Envelope{
		"start_time":         start.Format(time.RFC3339Nano),
		"end_time":           end.Format(time.RFC3339Nano),
		"difference_seconds": seconds,
		"difference_minutes": seconds / 60,
		"difference_hours":   seconds / 3600,
		"difference_days":    int(math.Floor(seconds / 86400)),
		"formatted":          diff.String(),
	}
}

func parseTimestamp(value, format string) (time.Time, error) {
	if format != "iso" {
		return time.Parse(format, value)
	}
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
