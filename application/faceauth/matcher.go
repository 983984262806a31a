package faceauth

import (
	"sort"
	"sync"

	"classmark.io/application/constants"
	"classmark.io/application/utils"
	"classmark.io/entities"
	"classmark.io/infrastructure/logger"
)

// MatchResult is a single probe-vs-registered comparison.
type MatchResult struct {
	Match      bool    `json:"match"`
	Similarity float64 `json:"similarity"`
}

// Matcher decides whether a probe embedding belongs to the owner of one
// or more registered embeddings. Averaging the top matches smooths over
// single-sample noise while still requiring consistent resemblance across
// several registered angles.
type Matcher struct {
	TopK      int
	Threshold float64
}

func NewMatcher() *Matcher {
	return &Matcher{
		TopK:      constants.TOP_K_MATCHES,
		Threshold: constants.SIMILARITY_THRESHOLD,
	}
}

// Decide runs MatchBestOfN against the matcher's default threshold.
func (m *Matcher) Decide(probe []float64, registered [][]float64) entities.AttendanceDecision {
	return m.MatchBestOfN(probe, registered, m.Threshold)
}

// MatchOne compares the probe against a single registered embedding.
func (m *Matcher) MatchOne(probe, registered []float64, threshold float64) (MatchResult, error) {
	similarity, err := Cosine(probe, registered)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{
		Match:      similarity >= threshold,
		Similarity: similarity,
	}, nil
}

type comparison struct {
	index      int
	similarity float64
	err        error
}

// MatchBestOfN compares the probe against every registered embedding,
// sorts descending by similarity, and averages the top-K (or fewer).
// A comparison that fails, typically a corrupt stored embedding, is
// skipped with a warning rather than failing the whole match.
// Comparisons run in parallel; results are keyed by index so the final
// ordering is deterministic regardless of completion order.
func (m *Matcher) MatchBestOfN(probe []float64, registered [][]float64, threshold float64) entities.AttendanceDecision {
	results := make([]comparison, len(registered))

	var wg sync.WaitGroup
	for i, reg := range registered {
		wg.Add(1)
		go func(i int, reg []float64) {
			defer wg.Done()
			similarity, err := Cosine(probe, reg)
			results[i] = comparison{index: i, similarity: similarity, err: err}
		}(i, reg)
	}
	wg.Wait()

	valid := results[:0]
	for _, c := range results {
		if c.err != nil {
			logger.Warning("skipping registered embedding", logger.LoggerOptions{
				Key:  "index",
				Data: c.index,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: c.err,
			})
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) == 0 {
		logger.Warning("no valid registered embeddings to match against")
		return entities.AttendanceDecision{ID: utils.GenerateULIDString()}
	}

	sort.Slice(valid, func(a, b int) bool {
		if valid[a].similarity != valid[b].similarity {
			return valid[a].similarity > valid[b].similarity
		}
		return valid[a].index < valid[b].index
	})

	topK := m.TopK
	if topK < 1 {
		topK = 1
	}
	if topK > len(valid) {
		topK = len(valid)
	}
	sum := 0.0
	for _, c := range valid[:topK] {
		sum += c.similarity
	}
	average := sum / float64(topK)

	return entities.AttendanceDecision{
		ID:             utils.GenerateULIDString(),
		Matched:        average >= threshold,
		Similarity:     average,
		BestMatchIndex: utils.GetIntPointer(valid[0].index),
	}
}
