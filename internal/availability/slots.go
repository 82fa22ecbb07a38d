package availability

import (
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

const (
	defaultDuration = 60
	dateLayout      = "2006-01-02"
)

// Slot is a fixed-duration bookable interval derived from one availability
// window.
type Slot struct {
	Start time.Time           `json:"start"`
	End   time.Time           `json:"end"`
	Staff domain.StaffSummary `json:"staff"`
}

// Day buckets the slots of all windows starting on the same calendar date.
type Day struct {
	Date  string `json:"date"`
	Hours []Slot `json:"hours"`
}

// Reduce appends the bookable slots of one availability window to the
// date-bucketed accumulator. Slots are packed back to back from the window
// start in steps of duration+buffertime and never extend past the window
// end: a slot is only emitted while the slot plus a one-minute margin fits
// before the end, so a window of length L yields floor((L-1min)/step)
// slots. A window spanning midnight keeps all its slots under its start
// date. Buckets accumulate in window-processing order, no re-sorting.
func Reduce(days []Day, window domain.ScheduleWindow, product domain.Product) []Day {
	duration := product.Duration
	if duration == 0 {
		duration = defaultDuration
	}
	step := time.Duration(duration+product.Buffertime) * time.Minute

	date := window.Start.Format(dateLayout)

	idx := -1
	for i := range days {
		if days[i].Date == date {
			idx = i
			break
		}
	}
	if idx == -1 {
		days = append(days, Day{Date: date})
		idx = len(days) - 1
	}

	for cursor := window.Start; !cursor.Add(step + time.Minute).After(window.End); cursor = cursor.Add(step) {
		days[idx].Hours = append(days[idx].Hours, Slot{
			Start: cursor,
			End:   cursor.Add(step),
			Staff: window.Staff,
		})
	}

	return days
}
