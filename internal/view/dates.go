package view

import (
	"fmt"
	"time"
)

var jakarta = loadJakarta()

var dayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthShort = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

func loadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// LongDate renders "Minggu, 5 Oktober 2025" in Jakarta time.
func LongDate(t time.Time) string {
	t = t.In(jakarta)
	return fmt.Sprintf("%s, %d %s %d", dayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}

// ClockWIB renders "14:05 WIB".
func ClockWIB(t time.Time) string {
	t = t.In(jakarta)
	return fmt.Sprintf("%02d:%02d WIB", t.Hour(), t.Minute())
}

// ShortDate renders "5 Okt 2025".
func ShortDate(t time.Time) string {
	t = t.In(jakarta)
	return fmt.Sprintf("%d %s %d", t.Day(), monthShort[t.Month()-1], t.Year())
}

// parseDate accepts the timestamp shapes the blog service emits.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
