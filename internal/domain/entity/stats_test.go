package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWritingStats_Record(t *testing.T) {
	s := NewWritingStats("p1")

	s.Record(day("2026-03-02"), 100)
	s.Record(day("2026-03-02"), 50)
	assert.Equal(t, 150, s.On(day("2026-03-02")))

	// 非正增量被忽略
	s.Record(day("2026-03-02"), 0)
	s.Record(day("2026-03-02"), -30)
	assert.Equal(t, 150, s.On(day("2026-03-02")))
	assert.Equal(t, 150, s.Total())
}

func TestWritingStats_Week(t *testing.T) {
	s := NewWritingStats("p1")
	// 2026-03-04 是周三
	s.Record(day("2026-03-02"), 100) // 周一
	s.Record(day("2026-03-04"), 200) // 周三
	s.Record(day("2026-03-08"), 400) // 周日
	s.Record(day("2026-03-09"), 800) // 下周一

	now := day("2026-03-04")
	assert.Equal(t, 700, s.Week(now, time.Monday))
	// 周起始为周日时，窗口是 03-01 至 03-07
	assert.Equal(t, 300, s.Week(now, time.Sunday))
}

func TestWritingStats_MonthYear(t *testing.T) {
	s := NewWritingStats("p1")
	s.Record(day("2026-02-28"), 100)
	s.Record(day("2026-03-01"), 200)
	s.Record(day("2026-03-31"), 400)
	s.Record(day("2025-12-31"), 800)

	now := day("2026-03-15")
	assert.Equal(t, 600, s.Month(now))
	assert.Equal(t, 700, s.Year(now))
}

func TestWritingStats_Streak(t *testing.T) {
	s := NewWritingStats("p1")
	now := day("2026-03-10")

	assert.Equal(t, 0, s.Streak(now))

	s.Record(day("2026-03-10"), 10)
	s.Record(day("2026-03-09"), 10)
	s.Record(day("2026-03-08"), 10)
	// 03-07 缺失，03-06 有记录但不连续
	s.Record(day("2026-03-06"), 10)
	assert.Equal(t, 3, s.Streak(now))
}

func TestWritingStats_AverageDaily(t *testing.T) {
	s := NewWritingStats("p1")
	require.Equal(t, 0, s.AverageDaily())

	s.Record(day("2026-03-01"), 100)
	s.Record(day("2026-03-02"), 200)
	s.Record(day("2026-03-03"), 301)
	// 活跃日口径，整数除法
	assert.Equal(t, 200, s.AverageDaily())
}

func TestWritingStats_RangeSum(t *testing.T) {
	s := NewWritingStats("p1")
	s.Record(day("2026-01-31"), 1)
	s.Record(day("2026-02-01"), 2)
	s.Record(day("2026-02-28"), 4)
	s.Record(day("2026-03-01"), 8)

	assert.Equal(t, 6, s.RangeSum(day("2026-02-01"), day("2026-02-28")))
}
