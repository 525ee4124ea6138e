// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Format tanggal yang diterima dari client (urut prioritas).
var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate menerima "2025-01-01" atau RFC3339; hasil selalu UTC.
// Tanggal tanpa jam dianggap 00:00 UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", s)
}

// ParseDatePtr: nil / kosong → nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddMonths: tanggal + n bulan (normalisasi ala time.AddDate, 31 Jan + 1 = 3 Mar).
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// DateString: format YYYY-MM-DD (UTC).
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NowUTC dipakai sebagai default clock.
func NowUTC() time.Time { return time.Now().UTC() }
