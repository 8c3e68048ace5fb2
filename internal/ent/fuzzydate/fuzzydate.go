// Package fuzzydate parses imprecise historical dates as they appear in the
// source spreadsheets: bare years, day or month precision dates, approximation
// markers and dates before the common era.
package fuzzydate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned for non-empty strings that do not look like a
// date.
var ErrUnparseable = errors.New("cannot parse date")

// Date is a parsed fuzzy date. From and To bound the interval the date
// covers, Sort is the value used for ordering.
type Date struct {
	// Raw is the string as it was given.
	Raw string

	// Sort is the date used for sorting, it equals From.
	Sort time.Time

	// From is the earliest day covered by the date.
	From time.Time

	// To is the latest day covered by the date.
	To time.Time

	// Approx is true when the date carried an approximation marker.
	Approx bool
}

// IsZero reports if the date is empty.
func (d Date) IsZero() bool {
	return d.Raw == ""
}

var (
	yearRe  = regexp.MustCompile(`^(\d{1,4})$`)
	monthRe = regexp.MustCompile(`^(\d{1,2})\.\s*(\d{1,4})$`)
	dayRe   = regexp.MustCompile(`^(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{1,4})$`)

	approxPrefixes = []string{"circa", "ca.", "ca", "um", "c."}
	bcSuffixes     = []string{"v. chr.", "v.chr.", "bce", "bc"}
	adSuffixes     = []string{"n. chr.", "n.chr.", "ad", "ce"}
)

// Parse converts s into a Date. An empty (or whitespace-only) string yields a
// zero Date and no error.
func Parse(s string) (Date, error) {
	res := Date{Raw: strings.TrimSpace(s)}
	if res.Raw == "" {
		return Date{}, nil
	}

	v := strings.ToLower(res.Raw)
	if strings.HasSuffix(v, "?") {
		res.Approx = true
		v = strings.TrimSpace(strings.TrimSuffix(v, "?"))
	}
	for _, p := range approxPrefixes {
		if strings.HasPrefix(v, p+" ") {
			res.Approx = true
			v = strings.TrimSpace(v[len(p):])
			break
		}
	}

	var bc bool
	for _, sfx := range bcSuffixes {
		if strings.HasSuffix(v, sfx) {
			bc = true
			v = strings.TrimSpace(strings.TrimSuffix(v, sfx))
			break
		}
	}
	if !bc {
		for _, sfx := range adSuffixes {
			if strings.HasSuffix(v, " "+sfx) {
				v = strings.TrimSpace(strings.TrimSuffix(v, sfx))
				break
			}
		}
	}

	var err error
	switch {
	case yearRe.MatchString(v):
		m := yearRe.FindStringSubmatch(v)
		y := year(m[1], bc)
		res.From = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		res.To = time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
	case monthRe.MatchString(v):
		m := monthRe.FindStringSubmatch(v)
		y := year(m[2], bc)
		mon, _ := strconv.Atoi(m[1])
		if mon < 1 || mon > 12 {
			return Date{}, fmt.Errorf("%w: %q has invalid month", ErrUnparseable, s)
		}
		res.From = time.Date(y, time.Month(mon), 1, 0, 0, 0, 0, time.UTC)
		res.To = res.From.AddDate(0, 1, -1)
	case dayRe.MatchString(v):
		m := dayRe.FindStringSubmatch(v)
		y := year(m[3], bc)
		d, _ := strconv.Atoi(m[1])
		mon, _ := strconv.Atoi(m[2])
		res.From, err = day(y, mon, d)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %w", ErrUnparseable, s, err)
		}
		res.To = res.From
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	res.Sort = res.From
	return res, nil
}

// year converts digits to an astronomical year number, 1 BC is year 0.
func year(digits string, bc bool) int {
	y, _ := strconv.Atoi(digits)
	if bc {
		return 1 - y
	}
	return y
}

func day(y, mon, d int) (time.Time, error) {
	t := time.Date(y, time.Month(mon), d, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(mon) || t.Day() != d {
		return time.Time{}, fmt.Errorf("day %d.%d does not exist", d, mon)
	}
	return t, nil
}
