package gc

import (
	"math"
	"time"

	"go.trai.ch/larder/internal/core/domain"
)

// The eviction score combines recency and size as a weighted geometric
// mean: score(e) = recency(e)^wR * smallness(e)^wS, both normalized into
// (0, 1] over the candidate set. The beta sign selects which side carries
// the heavier weight and the magnitude sharpens it; at |beta| = 1 both
// sides weigh 1/2, so +1 and -1 are the reference weightings. Lowest
// score is evicted first.
func weights(beta float64) (recency, smallness float64) {
	major := math.Abs(beta) / (1 + math.Abs(beta))
	minor := 1 - major
	if beta >= 0 {
		return major, minor
	}
	return minor, major
}

// scoreEntries computes eviction scores for the candidate set.
func scoreEntries(entries []domain.CacheEntry, beta float64, now time.Time) map[string]float64 {
	if len(entries) == 0 {
		return nil
	}

	oldest := now
	minSize := int64(math.MaxInt64)
	for _, e := range entries {
		if e.LastAccessedAt.Before(oldest) {
			oldest = e.LastAccessedAt
		}
		if e.SizeBytes < minSize {
			minSize = e.SizeBytes
		}
	}
	if minSize < 1 {
		minSize = 1
	}
	span := now.Sub(oldest).Seconds()

	wR, wS := weights(beta)
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		age := now.Sub(e.LastAccessedAt).Seconds()
		// Most recent -> 1, least recent -> 1/(1+span).
		recency := (1 + span - age) / (1 + span)
		size := e.SizeBytes
		if size < 1 {
			size = 1
		}
		smallness := float64(minSize) / float64(size)
		scores[e.RecipeHash] = math.Pow(recency, wR) * math.Pow(smallness, wS)
	}
	return scores
}
