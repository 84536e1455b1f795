package gantt

import (
	"fmt"
	"time"

	"github.com/sadopc/ganttr/internal/date"
)

// MonthBucket groups the consecutive days of one calendar month that fall
// inside a window. A month only partly covered by the window holds only the
// covered days.
type MonthBucket struct {
	Year  int
	Month time.Month
	Label string
	Days  []date.Date
	Width int
}

// EnumerateDays returns every day of the window in ascending order. A
// degenerate window yields nil.
func EnumerateDays(w Window) []date.Date {
	n := w.Days()
	if n == 0 {
		return nil
	}
	days := make([]date.Date, n)
	for i := range days {
		days[i] = w.Start.AddDays(i)
	}
	return days
}

// BuildGrid expands the window into month buckets, ordered chronologically.
// Each bucket's width is its day count times dayWidth, so the widths always
// add up to w.Days()*dayWidth.
func BuildGrid(w Window, dayWidth int) []MonthBucket {
	return groupByMonth(EnumerateDays(w), dayWidth)
}

func groupByMonth(days []date.Date, dayWidth int) []MonthBucket {
	if len(days) == 0 {
		return nil
	}
	multiYear := days[0].Year() != days[len(days)-1].Year()

	var buckets []MonthBucket
	for _, d := range days {
		n := len(buckets)
		if n > 0 && buckets[n-1].Year == d.Year() && buckets[n-1].Month == d.Month() {
			buckets[n-1].Days = append(buckets[n-1].Days, d)
			continue
		}
		buckets = append(buckets, MonthBucket{
			Year:  d.Year(),
			Month: d.Month(),
			Label: monthLabel(d, multiYear),
			Days:  []date.Date{d},
		})
	}
	for i := range buckets {
		buckets[i].Width = len(buckets[i].Days) * dayWidth
	}
	return buckets
}

func monthLabel(d date.Date, withYear bool) string {
	if withYear {
		return fmt.Sprintf("%s %d", d.Month(), d.Year())
	}
	return d.Month().String()
}

// TotalWidth sums the widths of the buckets.
func TotalWidth(buckets []MonthBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Width
	}
	return total
}
