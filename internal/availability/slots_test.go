package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

func makeWindow(start, end time.Time) domain.ScheduleWindow {
	return domain.ScheduleWindow{
		ID:    primitive.NewObjectID(),
		Start: start,
		End:   end,
		Staff: domain.StaffSummary{ID: primitive.NewObjectID(), Fullname: "Anna"},
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestReduce_PacksBackToBack(t *testing.T) {
	window := makeWindow(at(t, "2026-03-02T09:00:00Z"), at(t, "2026-03-02T12:01:00Z"))
	product := domain.Product{Duration: 60}

	days := Reduce(nil, window, product)

	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-02", days[0].Date)
	require.Len(t, days[0].Hours, 3)

	for i, hour := range days[0].Hours {
		assert.Equal(t, window.Start.Add(time.Duration(i)*time.Hour), hour.Start)
		assert.Equal(t, window.Start.Add(time.Duration(i+1)*time.Hour), hour.End)
		assert.Equal(t, window.Staff, hour.Staff)
	}
}

func TestReduce_SlotCountFormula(t *testing.T) {
	tests := []struct {
		name       string
		length     time.Duration
		duration   int
		buffertime int
		want       int
	}{
		{"exact multiple loses trailing slot", 3 * time.Hour, 60, 0, 2},
		{"one minute slack keeps it", 3*time.Hour + time.Minute, 60, 0, 3},
		{"partial trailing slot dropped", 90 * time.Minute, 45, 15, 1},
		{"window shorter than a slot", 59 * time.Minute, 60, 0, 0},
		{"window equal to a slot", 60 * time.Minute, 60, 0, 0},
		{"buffer widens the step", 2 * time.Hour, 45, 15, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start := at(t, "2026-03-02T09:00:00Z")
			window := makeWindow(start, start.Add(tc.length))
			product := domain.Product{Duration: tc.duration, Buffertime: tc.buffertime}

			days := Reduce(nil, window, product)

			require.Len(t, days, 1)
			assert.Len(t, days[0].Hours, tc.want)

			step := time.Duration(tc.duration+tc.buffertime) * time.Minute
			for i, hour := range days[0].Hours {
				assert.Equal(t, start.Add(time.Duration(i)*step), hour.Start)
			}
		})
	}
}

func TestReduce_DefaultDuration(t *testing.T) {
	start := at(t, "2026-03-02T09:00:00Z")
	window := makeWindow(start, start.Add(2*time.Hour+time.Minute))

	days := Reduce(nil, window, domain.Product{})

	require.Len(t, days, 1)
	require.Len(t, days[0].Hours, 2)
	assert.Equal(t, start.Add(time.Hour), days[0].Hours[0].End)
}

func TestReduce_AccumulatesSameDate(t *testing.T) {
	morning := makeWindow(at(t, "2026-03-02T09:00:00Z"), at(t, "2026-03-02T10:01:00Z"))
	evening := makeWindow(at(t, "2026-03-02T18:00:00Z"), at(t, "2026-03-02T19:01:00Z"))
	product := domain.Product{Duration: 60}

	days := Reduce(nil, morning, product)
	days = Reduce(days, evening, product)

	require.Len(t, days, 1)
	require.Len(t, days[0].Hours, 2)
	// appended in window-processing order
	assert.Equal(t, morning.Start, days[0].Hours[0].Start)
	assert.Equal(t, evening.Start, days[0].Hours[1].Start)
}

func TestReduce_SeparateDates(t *testing.T) {
	monday := makeWindow(at(t, "2026-03-02T09:00:00Z"), at(t, "2026-03-02T10:01:00Z"))
	tuesday := makeWindow(at(t, "2026-03-03T09:00:00Z"), at(t, "2026-03-03T10:01:00Z"))
	product := domain.Product{Duration: 60}

	days := Reduce(nil, tuesday, product)
	days = Reduce(days, monday, product)

	require.Len(t, days, 2)
	// buckets keep window-processing order, no re-sorting
	assert.Equal(t, "2026-03-03", days[0].Date)
	assert.Equal(t, "2026-03-02", days[1].Date)
}

func TestReduce_MidnightSpanKeepsStartDate(t *testing.T) {
	window := makeWindow(at(t, "2026-03-02T23:00:00Z"), at(t, "2026-03-03T01:01:00Z"))
	product := domain.Product{Duration: 60}

	days := Reduce(nil, window, product)

	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-02", days[0].Date)
	assert.Len(t, days[0].Hours, 2)
}
