package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reNonAmount = regexp.MustCompile(`[^0-9.\-]`)
	reISODate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reSlashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	rePhone     = regexp.MustCompile(`^\+?\d{9,15}$`)
	reNonPhone  = regexp.MustCompile(`[^\d+]`)
)

// ParseAmount strips everything except digits, sign, and decimal
// point. Unparseable input is zero.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	cleaned := reNonAmount.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// looser calendar layouts accepted after ISO and D/M/YYYY
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ToISODate normalizes a raw date cell to YYYY-MM-DD. The second
// return is false when nothing parseable was found.
func ToISODate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if reISODate.MatchString(raw) {
		return raw, true
	}
	if m := reSlashDate.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if t.Day() == day && int(t.Month()) == month {
				return t.Format("2006-01-02"), true
			}
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02"), true
		}
	}
	return "", false
}

// NormalizePhone keeps digits and a leading plus, accepting 9-15
// digit numbers only.
func NormalizePhone(raw string) string {
	only := reNonPhone.ReplaceAllString(raw, "")
	if rePhone.MatchString(only) {
		return only
	}
	return ""
}
