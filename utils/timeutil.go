package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock membungkus waktu sekarang supaya bisa diganti fixed clock di test.
// Setiap operasi scheduling mengambil "now" sekali lewat interface ini.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// To12Hour mengubah "HH:MM" (24h) menjadi format 12-hour, mis. "13:00" -> "1:00 PM".
// Jam 0 dirender sebagai 12 AM. Input kosong/rusak menghasilkan "".
func To12Hour(time24 string) string {
	if time24 == "" {
		return ""
	}
	parts := strings.SplitN(time24, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}

	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, parts[1], ampm)
}

// FormatDuration merender durasi sebagai "{H}H and {M}M" / "{H}H" / "{M}M",
// dibulatkan ke bawah ke jam dan menit utuh.
func FormatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dH and %dM", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dH", hours)
	}
	return fmt.Sprintf("%dM", minutes)
}

// ParseClockTime mem-parse "HH:MM" menjadi jam dan menit.
func ParseClockTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
