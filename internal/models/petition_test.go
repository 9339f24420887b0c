package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}
	morningOfToday := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)

	tests := []struct {
		name   string
		until  *time.Time
		passed bool
	}{
		{"no deadline", nil, false},
		{"deadline tomorrow", day(1), false},
		{"deadline today", day(0), false},
		{"deadline today earlier hour", &morningOfToday, false},
		{"deadline yesterday", day(-1), true},
		{"deadline last week", day(-7), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Petition{DateUntil: tt.until}
			require.Equal(t, tt.passed, p.DeadlinePassed(now))
		})
	}
}
