package availability

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Occupied is an existing booking or cart hold consuming a staff member's
// time.
type Occupied struct {
	Staff primitive.ObjectID
	Start time.Time
	End   time.Time
}

// Filter removes every slot consumed by the given booking or hold: a slot
// is dropped when its staff matches and the slot interval contains either
// booking.start+1min or booking.end-1min (inclusive bounds). The one-minute
// probe tolerates bookings ending exactly on a slot boundary without
// evicting the neighboring slot. Applying the filter for the same booking
// twice, or for several bookings in any order, yields the same slot set.
// The input is not mutated.
func Filter(days []Day, booked Occupied) []Day {
	probeStart := booked.Start.Add(time.Minute)
	probeEnd := booked.End.Add(-time.Minute)

	out := make([]Day, 0, len(days))
	for _, day := range days {
		hours := make([]Slot, 0, len(day.Hours))
		for _, hour := range day.Hours {
			if hour.Staff.ID != booked.Staff {
				hours = append(hours, hour)
				continue
			}
			if within(probeStart, hour) || within(probeEnd, hour) {
				continue
			}
			hours = append(hours, hour)
		}
		out = append(out, Day{Date: day.Date, Hours: hours})
	}

	return out
}

func within(t time.Time, hour Slot) bool {
	return !t.Before(hour.Start) && !t.After(hour.End)
}
