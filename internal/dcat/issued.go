package dcat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout renders issued dates as DD/MM/YYYY HH:MM.
const DisplayLayout = "02/01/2006 15:04"

// The catalog writes dates as "Mon, 01 Jan 2024 10:00:00 GMT+0000": an
// RFC 1123 prefix followed by a zone name glued to a numeric offset. The
// stdlib layouts cannot take that zone token, so it is split off first.
const issuedLayout = "Mon, 2 Jan 2006 15:04:05"

var issuedPattern = regexp.MustCompile(`^(.+\d{1,2}:\d{2}:\d{2})\s*([A-Za-z]*)([+-])(\d{2}):?(\d{2})$`)

// ParseIssued parses a catalog date, keeping the zone offset it carries.
func ParseIssued(raw string) (time.Time, error) {
	m := issuedPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}, fmt.Errorf("issued %q: unrecognized date format", raw)
	}

	hh, _ := strconv.Atoi(m[4])
	mm, _ := strconv.Atoi(m[5])
	if hh > 23 || mm > 59 {
		return time.Time{}, fmt.Errorf("issued %q: invalid zone offset", raw)
	}
	offset := hh*3600 + mm*60
	if m[3] == "-" {
		offset = -offset
	}

	t, err := time.ParseInLocation(issuedLayout, m[1], time.FixedZone(m[2], offset))
	if err != nil {
		return time.Time{}, fmt.Errorf("issued %q: %w", raw, err)
	}
	return t, nil
}

// FormatIssued reformats a catalog date for display. On any parse failure
// the raw string is returned unchanged.
func FormatIssued(raw string) string {
	t, err := ParseIssued(raw)
	if err != nil {
		return raw
	}
	return t.Format(DisplayLayout)
}
