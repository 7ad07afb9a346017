package utils

import "time"

// Editing representation used by the form's datetime inputs.
const LocalInputLayout = "2006-01-02T15:04"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	LocalInputLayout,
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO timestamp for display: "Jan 2, 2006" by
// default, "3:04 PM" when timeOnly is set. Malformed input renders as
// "Invalid date" rather than erroring.
func FormatDate(iso string, timeOnly bool) string {
	t, ok := parseTimestamp(iso)
	if !ok {
		return "Invalid date"
	}
	if timeOnly {
		return t.Format("3:04 PM")
	}
	return t.Format("Jan 2, 2006")
}

// ToLocalInput converts an ISO timestamp into the form's editing
// representation. Empty or unparseable input yields an empty field.
func ToLocalInput(iso string) string {
	t, ok := parseTimestamp(iso)
	if !ok {
		return ""
	}
	return t.Format(LocalInputLayout)
}

// NormalizeISO rewrites a server timestamp to canonical RFC 3339 UTC, the
// form list pages are cached and compared in. Unparseable values pass
// through untouched.
func NormalizeISO(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return s
	}
	return t.UTC().Format(time.RFC3339)
}
