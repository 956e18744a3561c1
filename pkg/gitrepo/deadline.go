package gitrepo

import (
	"strings"
	"time"

	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
)

// deadlineLayouts are tried in order after a trailing zone abbreviation has
// been split off. Layouts without an offset are interpreted in the zone of the
// abbreviation, or in local time like git does.
var deadlineLayouts = []string{ //nolint: gochecknoglobals
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// zoneOffsets resolves the abbreviations lecturers write into DEADLINE.
// time.Parse only knows the abbreviation of the local zone and UTC; any other
// abbreviation would silently become a zero offset.
var zoneOffsets = map[string]int{ //nolint: gochecknoglobals
	"UTC":  0,
	"GMT":  0,
	"Z":    0,
	"WET":  0,
	"WEST": 1 * 3600,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"CEST": 2 * 3600,
	"MEZ":  1 * 3600,
	"MESZ": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
}

// ParseDeadline parses the DEADLINE setting, e.g. "2024-12-20 23:59:59 CET".
// An empty value means now.
func ParseDeadline(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	value, loc := raw, time.Local
	if i := strings.LastIndexByte(raw, ' '); i > 0 && isLetters(raw[i+1:]) {
		abbr := strings.ToUpper(raw[i+1:])
		offset, ok := zoneOffsets[abbr]
		if !ok {
			return time.Time{}, serrors.With(serrors.ErrBadRequest, "unknown time zone %q in deadline %q", raw[i+1:], raw)
		}
		value, loc = strings.TrimSpace(raw[:i]), time.FixedZone(abbr, offset)
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, serrors.With(serrors.ErrBadRequest, "could not parse deadline %q", raw)
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}

	return true
}
