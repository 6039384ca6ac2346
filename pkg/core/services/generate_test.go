package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

// mockScheduleStore is an in-memory ScheduleStore with error injection.
type mockScheduleStore struct {
	schedules map[string]*model.Schedule

	getErr    error
	upsertErr error
	deleteErr error
	listErr   error

	upsertKeys  []string
	deleteCalls int
}

func newMockStore() *mockScheduleStore {
	return &mockScheduleStore{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleStore) GetSchedule(ctx context.Context, monthKey string) (*model.Schedule, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.schedules[monthKey], nil
}

func (m *mockScheduleStore) UpsertSchedule(ctx context.Context, monthKey string, schedule *model.Schedule) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertKeys = append(m.upsertKeys, monthKey)
	m.schedules[monthKey] = schedule
	return nil
}

func (m *mockScheduleStore) DeleteAllSchedules(ctx context.Context) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.schedules = make(map[string]*model.Schedule)
	return nil
}

func (m *mockScheduleStore) ListMonthKeys(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	keys := make([]string, 0, len(m.schedules))
	for key := range m.schedules {
		keys = append(keys, key)
	}
	return keys, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wardRules() *model.RuleSet {
	return &model.RuleSet{
		ActiveWeekdays:     model.AllDays(),
		TargetHoursPerWeek: 36,
		ShiftDurationHours: 12,
		ShiftTypes: []model.ShiftType{
			{
				Label:            "Day",
				Abbreviation:     "D",
				StartTime:        "07:00",
				EndTime:          "19:00",
				RequiredStaff:    3,
				MaxConsecutive:   4,
				AllowSameDayWith: []int{},
			},
			{
				Label:            "Night",
				Abbreviation:     "N",
				StartTime:        "19:00",
				EndTime:          "07:00",
				RequiredStaff:    2,
				MinDaysOff:       2,
				MaxConsecutive:   0,
				DayAfterLabel:    "R",
				AllowSameDayWith: []int{},
			},
		},
	}
}

func wardRoster(size int) []model.StaffMember {
	roster := make([]model.StaffMember, 0, size)
	for i := 1; i <= size; i++ {
		id := fmt.Sprintf("s%03d", i)
		roster = append(roster, model.StaffMember{ID: id, Name: "Staff " + id})
	}
	return roster
}

func TestGenerateMonth_PersistsUnderMonthKey(t *testing.T) {
	store := newMockStore()
	logger := zap.NewNop()

	result, err := GenerateMonth(context.Background(), store, logger,
		date(2026, time.September, 1), wardRoster(15), wardRules(), false)
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	assert.NotEmpty(t, result.Schedule.ID)
	assert.Len(t, result.Schedule.Shifts, 60)
	assert.Equal(t, []string{"2026-8"}, store.upsertKeys)
	assert.Equal(t, result.Schedule, store.schedules["2026-8"])
}

func TestGenerateMonth_DryRunDoesNotPersist(t *testing.T) {
	store := newMockStore()

	result, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(15), wardRules(), true)
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.NotNil(t, result.Schedule)
	assert.Empty(t, store.upsertKeys)
}

func TestGenerateMonth_UsesStoredPreviousMonthForLookback(t *testing.T) {
	store := newMockStore()
	rules := wardRules()
	roster := wardRoster(15)

	store.schedules["2026-7"] = &model.Schedule{
		ID:    "aug-run",
		Month: date(2026, time.August, 1),
		Shifts: []*model.ShiftInstance{
			{
				ID:            "shift-1-day-30",
				Date:          date(2026, time.August, 31),
				TypeIndex:     1,
				RequiredStaff: 2,
				AssignedStaff: []string{"s001"},
			},
		},
		Rules:  *rules,
		Roster: roster,
	}

	result, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), roster, rules, false)
	require.NoError(t, err)

	// The August 31st night keeps s001 off the 1st and 2nd
	for _, shift := range result.Schedule.Shifts {
		if shift.Date.Before(date(2026, time.September, 3)) {
			assert.False(t, shift.HasStaff("s001"),
				"s001 assigned on %s despite stored August night", shift.Date.Format("2006-01-02"))
		}
	}
}

func TestGenerateMonth_ReplacesExistingSchedule(t *testing.T) {
	store := newMockStore()
	store.schedules["2026-8"] = &model.Schedule{ID: "stale-run"}

	result, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(15), wardRules(), false)
	require.NoError(t, err)

	assert.Equal(t, result.Schedule.ID, store.schedules["2026-8"].ID)
	assert.NotEqual(t, "stale-run", store.schedules["2026-8"].ID)
}

func TestGenerateMonth_CountsUnderstaffedShifts(t *testing.T) {
	store := newMockStore()

	// Two staff cannot cover 5 required slots per day
	result, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(2), wardRules(), true)
	require.NoError(t, err)

	assert.Greater(t, result.Understaffed, 0)
}

func TestGenerateMonth_StoreGetError(t *testing.T) {
	store := newMockStore()
	store.getErr = fmt.Errorf("connection refused")

	_, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(15), wardRules(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load previous schedule")
}

func TestGenerateMonth_StoreUpsertError(t *testing.T) {
	store := newMockStore()
	store.upsertErr = fmt.Errorf("connection refused")

	_, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(15), wardRules(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist schedule")
}

func TestGenerateMonth_InvalidRules(t *testing.T) {
	store := newMockStore()
	rules := wardRules()
	rules.ShiftTypes = nil

	_, err := GenerateMonth(context.Background(), store, zap.NewNop(),
		date(2026, time.September, 1), wardRoster(15), rules, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate schedule")
	assert.Empty(t, store.upsertKeys)
}
