package selector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gisource-automation/posting"
)

var headers = []string{"Source", "Deadline"}

func withDeadline(source, deadline string) *posting.Posting {
	return posting.FromRow(headers, []string{source, deadline}, time.UTC)
}

func TestSelectEmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := Select(nil, today, rng)
	require.ErrorIs(t, err, ErrNoCandidates)

	// 全部过期或无法解析时同样无候选。
	pool := []*posting.Posting{
		withDeadline("a", "2025-01-01"),
		withDeadline("b", "下周"),
		withDeadline("c", ""),
	}
	_, err = Select(pool, today, rng)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelectSingleCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	pool := []*posting.Posting{withDeadline("only", "2025-07-01")}

	for i := 0; i < 100; i++ {
		got, err := Select(pool, today, rng)
		require.NoError(t, err)
		require.Equal(t, "only", got.Source)
	}
}

func TestSelectSoonFrequency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	soon := withDeadline("soon", "Soon")
	pool := []*posting.Posting{
		soon,
		withDeadline("july", "2025-07-01"),
		withDeadline("august", "2025-08-01"),
	}

	const trials = 20000
	hits := 0
	for i := 0; i < trials; i++ {
		got, err := Select(pool, today, rng)
		require.NoError(t, err)
		if got == soon {
			hits++
		}
	}
	freq := float64(hits) / trials
	require.InDelta(t, 0.8, freq, 0.02, "Soon 行选中频率应接近 0.8")
}

func TestSelectNoSoonReweights(t *testing.T) {
	// 无 Soon 行时最近截止按 0.9 权重，随机桶 0.1。
	// 随机桶命中最近行的概率是 1/2，故最近行总频率约 0.95。
	rng := rand.New(rand.NewSource(7))
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	july := withDeadline("july", "2025-07-01")
	pool := []*posting.Posting{
		july,
		withDeadline("august", "2025-08-01"),
	}

	const trials = 20000
	hits := 0
	for i := 0; i < trials; i++ {
		got, err := Select(pool, today, rng)
		require.NoError(t, err)
		if got == july {
			hits++
		}
	}
	freq := float64(hits) / trials
	require.InDelta(t, 0.95, freq, 0.02)
}

func TestSelectExcludesExpired(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	pool := []*posting.Posting{
		withDeadline("expired", "2025-06-01"),
		withDeadline("valid", "2025-07-01"),
	}

	for i := 0; i < 200; i++ {
		got, err := Select(pool, today, rng)
		require.NoError(t, err)
		require.Equal(t, "valid", got.Source)
	}
}

func TestSelectSameDayNotExpired(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	today := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	pool := []*posting.Posting{withDeadline("today", "2025-06-15")}

	got, err := Select(pool, today, rng)
	require.NoError(t, err)
	require.Equal(t, "today", got.Source)
}
