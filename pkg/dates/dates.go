package dates

import (
	"time"
)

const layoutISO = "2006-01-02"

// FormatDate renders a timestamp as a YYYY-MM-DD calendar date in the
// timestamp's own location, so a local "today" never shifts to yesterday
// or tomorrow when the process runs in a UTC-offset environment.
func FormatDate(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutISO, s)
}

// Cell is a single slot in a month grid: either a concrete calendar day
// or an empty placeholder before the 1st / after the last day.
type Cell struct {
	Date  time.Time
	Valid bool
}

// MonthMatrix builds the fixed 6x7 grid of calendar cells for a month.
// Row 0 starts on a Sunday and the 1st of the month lands in the column
// matching its weekday. The grid is always exactly 6 rows (42 cells),
// padded with empty cells, regardless of month length.
func MonthMatrix(year int, month time.Month) [][]Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startDay := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]Cell, 0, 42)
	for i := 0; i < startDay; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, Cell{Date: time.Date(year, month, d, 0, 0, 0, 0, time.UTC), Valid: true})
	}
	for len(cells) < 42 {
		cells = append(cells, Cell{})
	}

	rows := make([][]Cell, 0, 6)
	for i := 0; i < 6; i++ {
		rows = append(rows, cells[i*7:i*7+7])
	}
	return rows
}
