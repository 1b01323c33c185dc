package timeparsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
}

func TestMatchDateHeader_ISOForm(t *testing.T) {
	date, ok := MatchDateHeader("## 2025-01-15", fixedNow())
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15", date)
}

func TestMatchDateHeader_SlashForm(t *testing.T) {
	date, ok := MatchDateHeader("## 1/15/2025", fixedNow())
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15", date)
}

func TestMatchDateHeader_MonthNameForm(t *testing.T) {
	date, ok := MatchDateHeader("## January 15, 2025", fixedNow())
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15", date)

	date, ok = MatchDateHeader("## Jan 15 2025", fixedNow())
	assert.True(t, ok)
	assert.Equal(t, "2025-01-15", date)
}

func TestMatchDateHeader_RejectsInvalidCalendarDate(t *testing.T) {
	_, ok := MatchDateHeader("## 2025-02-30", fixedNow())
	assert.False(t, ok)

	_, ok = MatchDateHeader("## 2025-13-01", fixedNow())
	assert.False(t, ok)
}

func TestMatchDateHeader_NaturalLanguage(t *testing.T) {
	date, ok := MatchDateHeader("## yesterday", fixedNow())
	assert.True(t, ok)
	assert.Equal(t, "2025-01-19", date)
}

func TestMatchDateHeader_OrdinarySectionTitleIsNotADate(t *testing.T) {
	_, ok := MatchDateHeader("## Project State", fixedNow())
	assert.False(t, ok)

	_, ok = MatchDateHeader("## Gotchas", fixedNow())
	assert.False(t, ok)

	_, ok = MatchDateHeader("## This is a long section title with many words", fixedNow())
	assert.False(t, ok)
}

func TestMatchDateHeader_NonHeaderLine(t *testing.T) {
	_, ok := MatchDateHeader("not a header at all", fixedNow())
	assert.False(t, ok)
}

func TestDaysAgo_FlooredAtZero(t *testing.T) {
	now := fixedNow()
	assert.Equal(t, 5, DaysAgo("2025-01-15", now))
	assert.Equal(t, 0, DaysAgo("2025-01-20", now))
	assert.Equal(t, 0, DaysAgo("2025-01-25", now), "future dates floor at 0")
}

func TestDaysAgo_MalformedDate_ReturnsZero(t *testing.T) {
	assert.Equal(t, 0, DaysAgo("not-a-date", fixedNow()))
}
