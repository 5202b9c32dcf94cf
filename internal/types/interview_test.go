//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterview_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 12, 15, 0, 0, 0, time.Local)
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format(time.RFC3339)
	yesterday := now.AddDate(0, 0, -1).Format(time.RFC3339)

	tests := []struct {
		name   string
		status InterviewStatus
		at     string
		want   bool
	}{
		{"scheduled today", "Scheduled", today, true},
		{"scheduled earlier today", "scheduled", now.Add(-2 * time.Hour).Format(time.RFC3339), true},
		{"scheduled tomorrow", InterviewScheduled, tomorrow, true},
		{"cancelled in future", "Cancelled", tomorrow, false},
		{"canceled spelling", "canceled", tomorrow, false},
		{"completed", InterviewCompleted, tomorrow, false},
		{"loose completed text", "Scheduled (complete)", tomorrow, false},
		{"empty status treated as scheduled", "", tomorrow, true},
		{"past", InterviewScheduled, yesterday, false},
		{"invalid date", InterviewScheduled, "not a date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := Interview{Status: tt.status, ScheduledAt: tt.at}
			assert.Equal(t, tt.want, iv.IsUpcoming(now))
		})
	}
}

func TestInterview_Normalize(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("invalid date defaults to now", func(t *testing.T) {
		iv := Interview{ScheduledAt: "soon"}
		iv.Normalize(now)
		assert.Equal(t, "2026-01-02T03:04:05.000Z", iv.ScheduledAt)
		assert.Equal(t, InterviewScheduled, iv.Status)
		assert.Equal(t, 60, iv.Duration)
	})

	t.Run("missing date defaults to now", func(t *testing.T) {
		iv := Interview{Status: InterviewCompleted, Duration: 30}
		iv.Normalize(now)
		assert.Equal(t, "2026-01-02T03:04:05.000Z", iv.ScheduledAt)
		assert.Equal(t, InterviewCompleted, iv.Status)
		assert.Equal(t, 30, iv.Duration)
	})

	t.Run("valid date is kept", func(t *testing.T) {
		iv := Interview{ScheduledAt: "2026-02-10T14:00:00Z"}
		iv.Normalize(now)
		assert.Equal(t, "2026-02-10T14:00:00.000Z", iv.ScheduledAt)
	})
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2026-02-10T14:00:00Z", "2026-02-10T14:00:00.123+02:00", "2026-02-10T14:00", "2026-02-10"} {
		_, err := ParseTimestamp(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseTimestamp("")
	assert.Error(t, err)
	_, err = ParseTimestamp("10/02/2026")
	assert.Error(t, err)
}

func TestJob_IsActive(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{"active", true},
		{" Active ", true},
		{"OPEN", true},
		{"published", true},
		{"draft", false},
		{"closed", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Job{Status: tt.status}.IsActive())
		})
	}
}
