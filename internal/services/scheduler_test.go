package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "0 0 8 * * *"},
		{in: " 23:59 ", want: "0 59 23 * * *"},
		{in: "0:5", want: "0 5 0 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := buildDailySpec(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	_, err := s.ScheduleDaily("08:00", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(time.Minute, func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleDaily("8am", func() {})
	assert.Error(t, err)

	assert.Equal(t, 2, s.Entries())
	s.Start()
	s.Stop()
}

func TestClockDays(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	// 20:00 UTC on the 15th is already the 16th in Kolkata.
	clock := Clock{Now: func() time.Time { return time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC) }, Location: kolkata}

	assert.True(t, clock.today().Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, kolkata)))
	assert.True(t, clock.Day(time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)).Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, kolkata)))

	moved := clock.onDay(clock.today(), time.Date(2026, 10, 10, 9, 15, 0, 0, kolkata))
	assert.True(t, moved.Equal(time.Date(2026, 10, 16, 9, 15, 0, 0, kolkata)))
}
