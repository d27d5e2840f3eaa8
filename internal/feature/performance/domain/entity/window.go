// Package entity はパフォーマンスチャートのドメインモデルを定義します。
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWindow is returned for a range selector outside the closed set.
var ErrInvalidWindow = errors.New("invalid window")

// Window はチャートの表示期間です。
type Window string

const (
	Window1D  Window = "1D"
	Window7D  Window = "7D"
	Window1M  Window = "1M"
	Window3M  Window = "3M"
	WindowYTD Window = "YTD"
	WindowAll Window = "ALL"
)

// DefaultWindow is used when a caller does not pick a range.
const DefaultWindow = Window1M

// Windows lists every window in display order.
var Windows = []Window{Window1D, Window7D, Window1M, Window3M, WindowYTD, WindowAll}

// ParseWindow は "1m" や " ytd " のような入力も受け付けます。
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToUpper(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	return w, nil
}

func (w Window) Valid() bool {
	switch w {
	case Window1D, Window7D, Window1M, Window3M, WindowYTD, WindowAll:
		return true
	}
	return false
}

func (w Window) String() string { return string(w) }

// Start returns the first day of the window ending on today's calendar day.
// The result is a calendar day as returned by Day. Month and year
// subtraction keep the day of month and normalise forward, so Mar 31 minus
// one month is Mar 2 or Mar 3. An invalid window starts today.
func (w Window) Start(today time.Time) time.Time {
	today = Day(today)
	switch w {
	case Window1D:
		return today
	case Window7D:
		return today.AddDate(0, 0, -7)
	case Window1M:
		return today.AddDate(0, -1, 0)
	case Window3M:
		return today.AddDate(0, -3, 0)
	case WindowYTD:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case WindowAll:
		return today.AddDate(-2, 0, 0)
	default:
		return today
	}
}

// Day returns t's calendar date in t's own location as midnight UTC.
// Day arithmetic on the result never meets a DST shift, so AddDate(0, 0, 1)
// is always the next calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
