package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *fakeScheduleRepo, primitive.ObjectID) {
	t.Helper()

	schedules := &fakeScheduleRepo{}
	staffRepo := newFakeStaffRepo()

	staff := &domain.Staff{Shop: "beauty.myshopify.com", Fullname: "Anna", Active: true}
	require.NoError(t, staffRepo.Create(context.Background(), staff))

	return NewScheduleService(schedules, staffRepo, testLogger()), schedules, staff.ID
}

func TestScheduleService_Create_SingleWindow(t *testing.T) {
	svc, schedules, staff := newScheduleFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out, err := svc.Create(context.Background(), CreateScheduleInput{
		Shop:  "beauty.myshopify.com",
		Staff: staff,
		Start: start,
		End:   start.Add(3 * time.Hour),
		Tag:   "hair",
	})
	require.NoError(t, err)

	require.Len(t, out, 1)
	require.Len(t, schedules.created, 1)
	assert.Empty(t, schedules.created[0].GroupID)
	assert.True(t, schedules.created[0].Available)
	assert.Equal(t, "hair", schedules.created[0].Tag)
}

func TestScheduleService_Create_WeeklyGroup(t *testing.T) {
	svc, schedules, staff := newScheduleFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out, err := svc.Create(context.Background(), CreateScheduleInput{
		Shop:  "beauty.myshopify.com",
		Staff: staff,
		Start: start,
		End:   start.Add(3 * time.Hour),
		Tag:   "hair",
		Weeks: 4,
	})
	require.NoError(t, err)

	require.Len(t, out, 4)
	require.Len(t, schedules.created, 4)

	groupID := schedules.created[0].GroupID
	assert.NotEmpty(t, groupID)
	for i, schedule := range schedules.created {
		assert.Equal(t, groupID, schedule.GroupID)
		assert.Equal(t, start.AddDate(0, 0, i*7), schedule.Start)
	}
}

func TestScheduleService_Create_EndBeforeStart(t *testing.T) {
	svc, _, staff := newScheduleFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateScheduleInput{
		Shop:  "beauty.myshopify.com",
		Staff: staff,
		Start: start,
		End:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestScheduleService_Create_UnknownStaff(t *testing.T) {
	svc, _, _ := newScheduleFixture(t)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateScheduleInput{
		Shop:  "beauty.myshopify.com",
		Staff: primitive.NewObjectID(),
		Start: start,
		End:   start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
