package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todo-store/internal/domain"
)

func timePtr(t time.Time) *time.Time { return &t }
func boolPtr(b bool) *bool           { return &b }

var (
	windowStart = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	testWindow  = domain.Window{Start: windowStart, End: windowEnd}
)

func TestActive(t *testing.T) {
	tests := []struct {
		name     string
		isActive *bool
		expected bool
	}{
		{name: "unset flag does not match", isActive: nil, expected: false},
		{name: "false flag does not match", isActive: boolPtr(false), expected: false},
		{name: "true flag matches", isActive: boolPtr(true), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{ID: "a", TaskName: "x", IsActive: tt.isActive}
			assert.Equal(t, tt.expected, Active().Match(task))
		})
	}
}

func TestBothDatesPresent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected bool
	}{
		{name: "neither date", expected: false},
		{name: "only start", start: timePtr(now), expected: false},
		{name: "only end", end: timePtr(now), expected: false},
		{name: "both dates", start: timePtr(now), end: timePtr(now), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{DateStart: tt.start, DateEnd: tt.end}
			assert.Equal(t, tt.expected, BothDatesPresent().Match(task))
		})
	}
}

func TestRangeOverlap(t *testing.T) {
	inside := windowStart.Add(6 * time.Hour)
	before := windowStart.Add(-24 * time.Hour)
	after := windowEnd.Add(24 * time.Hour)

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected bool
	}{
		{name: "start inside, end unset", start: timePtr(inside), expected: true},
		{name: "start on window start", start: timePtr(windowStart), expected: true},
		{name: "start on window end", start: timePtr(windowEnd), expected: true},
		{name: "start after window, end unset", start: timePtr(after), expected: false},
		{name: "start before window, end unset", start: timePtr(before), expected: false},
		{name: "end inside window, start unset", end: timePtr(inside), expected: true},
		{name: "spans across window start", start: timePtr(before), end: timePtr(after), expected: true},
		{name: "ends exactly at window start", start: timePtr(before), end: timePtr(windowStart), expected: true},
		{name: "entirely before window", start: timePtr(before), end: timePtr(before.Add(time.Hour)), expected: false},
		{name: "entirely after window", start: timePtr(after), end: timePtr(after.Add(time.Hour)), expected: false},
		{name: "no dates", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{DateStart: tt.start, DateEnd: tt.end}
			assert.Equal(t, tt.expected, RangeOverlap(testWindow).Match(task))
		})
	}
}

func TestTaskFilter_ExcludesRecordWithoutEndDate(t *testing.T) {
	start := windowStart.Add(time.Hour)
	task := &domain.Task{ID: "a", TaskName: "Buy milk", DateStart: &start, IsActive: boolPtr(true)}

	assert.True(t, RangeOverlap(testWindow).Match(task))
	assert.False(t, BothDatesPresent().Match(task))
	assert.False(t, TaskFilter(testWindow).Match(task))
}

func TestTaskFilter_MatchesActiveTaskInsideWindow(t *testing.T) {
	start := windowStart.Add(time.Hour)
	end := windowStart.Add(2 * time.Hour)
	task := &domain.Task{ID: "a", TaskName: "Buy milk", DateStart: &start, DateEnd: &end, IsActive: boolPtr(true)}

	assert.True(t, TaskFilter(testWindow).Match(task))

	task.IsActive = boolPtr(false)
	assert.False(t, TaskFilter(testWindow).Match(task))
}

func TestTaskFilter_InstantWindow(t *testing.T) {
	instant := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	w := domain.InstantWindow(instant)

	start := instant.Add(-time.Hour)
	end := instant.Add(time.Hour)
	spanning := &domain.Task{DateStart: &start, DateEnd: &end, IsActive: boolPtr(true)}
	assert.True(t, TaskFilter(w).Match(spanning))

	later := instant.Add(time.Minute)
	laterEnd := instant.Add(time.Hour)
	afterInstant := &domain.Task{DateStart: &later, DateEnd: &laterEnd, IsActive: boolPtr(true)}
	assert.False(t, TaskFilter(w).Match(afterInstant))
}

func TestConjunction_FlattensNestedAnds(t *testing.T) {
	e := Conjunction(Active(), BothDatesPresent())
	and, ok := e.(And)
	assert.True(t, ok)
	assert.Len(t, and, 3)
}
