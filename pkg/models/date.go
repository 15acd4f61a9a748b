package models

import (
	"strings"
	"time"
)

// ParseServerTime reproduces a quirk of the upstream server: it sometimes
// emits timestamps with more fractional-second digits than Go's RFC3339
// parser tolerates, and always as a non-strict-ISO variant. The client
// strips trailing zero microseconds and splits the timezone suffix before
// parsing, rather than fixing the server, per spec.md's design note: "Date
// microsecond trimming by the server yields non-ISO strings; the client's
// parser strips trailing zero microseconds and splits the timezone suffix;
// reproduce faithfully."
func ParseServerTime(s string) (time.Time, error) {
	body, zone := splitTimezone(s)
	body = trimTrailingZeroMicros(body)
	return time.Parse(time.RFC3339Nano, body+zone)
}

// splitTimezone separates the "Z" or "+hh:mm"/"-hh:mm" suffix from the rest
// of the timestamp so the fractional-second trimming below never touches
// the zone offset.
func splitTimezone(s string) (body, zone string) {
	if strings.HasSuffix(s, "Z") {
		return s[:len(s)-1], "Z"
	}
	// Look for a +hh:mm or -hh:mm suffix after the time's seconds field.
	if idx := strings.LastIndexAny(s, "+-"); idx > 10 {
		return s[:idx], s[idx:]
	}
	return s, "Z"
}

// trimTrailingZeroMicros drops trailing zero digits in the fractional
// second component, e.g. "12:00:00.500000" -> "12:00:00.5", and drops an
// all-zero fraction entirely, e.g. "12:00:00.000000" -> "12:00:00".
func trimTrailingZeroMicros(body string) string {
	dot := strings.LastIndex(body, ".")
	if dot < 0 {
		return body
	}
	frac := body[dot+1:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return body[:dot]
	}
	return body[:dot+1] + frac
}
