package faceauth

import (
	"math"
	"testing"
)

// unitVectorWithSimilarity builds a 2D unit vector whose cosine
// similarity against (1, 0) is exactly s.
func unitVectorWithSimilarity(s float64) []float64 {
	return []float64{s, math.Sqrt(1 - s*s)}
}

var probe = []float64{1, 0}

func TestMatchOne(t *testing.T) {
	m := NewMatcher()

	result, err := m.MatchOne(probe, unitVectorWithSimilarity(0.9), 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Match || math.Abs(result.Similarity-0.9) > 1e-9 {
		t.Errorf("MatchOne = %+v, want match at similarity 0.9", result)
	}

	result, err = m.MatchOne(probe, unitVectorWithSimilarity(0.5), 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Match {
		t.Errorf("similarity 0.5 must not match at threshold 0.6")
	}

	if _, err := m.MatchOne(probe, []float64{1, 0, 0}, 0.6); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestMatchBestOfNSingleRegistration(t *testing.T) {
	m := NewMatcher()
	decision := m.MatchBestOfN(probe, [][]float64{unitVectorWithSimilarity(0.9)}, 0.6)

	if !decision.Matched {
		t.Error("single registration at 0.9 should match")
	}
	if decision.ID == "" {
		t.Error("decision must carry an identifier")
	}
	if math.Abs(decision.Similarity-0.9) > 1e-9 {
		t.Errorf("similarity = %v, want 0.9", decision.Similarity)
	}
	if decision.BestMatchIndex == nil || *decision.BestMatchIndex != 0 {
		t.Errorf("best match index = %v, want 0", decision.BestMatchIndex)
	}
}

// The decision averages the top-K similarities rather than taking the
// maximum: one lucky high-similarity outlier must not carry the match.
func TestMatchBestOfNAveragesTopK(t *testing.T) {
	m := NewMatcher()
	registered := [][]float64{
		unitVectorWithSimilarity(0.5),
		unitVectorWithSimilarity(0.9),
		unitVectorWithSimilarity(0.3),
	}

	decision := m.MatchBestOfN(probe, registered, 0.6)
	wantAverage := (0.9 + 0.5 + 0.3) / 3
	if math.Abs(decision.Similarity-wantAverage) > 1e-9 {
		t.Errorf("similarity = %v, want top-3 average %v", decision.Similarity, wantAverage)
	}
	if decision.Matched {
		t.Error("average 0.566 must not match at threshold 0.6")
	}
	if decision.BestMatchIndex == nil || *decision.BestMatchIndex != 1 {
		t.Errorf("best match index = %v, want 1", decision.BestMatchIndex)
	}
}

func TestMatchBestOfNKeepsTopKOnly(t *testing.T) {
	m := NewMatcher()
	registered := [][]float64{
		unitVectorWithSimilarity(0.9),
		unitVectorWithSimilarity(0.8),
		unitVectorWithSimilarity(0.7),
		unitVectorWithSimilarity(0.1),
		unitVectorWithSimilarity(0.0),
	}

	decision := m.MatchBestOfN(probe, registered, 0.6)
	wantAverage := (0.9 + 0.8 + 0.7) / 3
	if math.Abs(decision.Similarity-wantAverage) > 1e-9 {
		t.Errorf("similarity = %v, want %v (low scores outside top 3 ignored)", decision.Similarity, wantAverage)
	}
	if !decision.Matched {
		t.Error("top-3 average 0.8 should match")
	}
}

// A corrupt stored embedding is skipped with a warning; the remaining
// comparisons still decide the match.
func TestMatchBestOfNSkipsCorruptEmbeddings(t *testing.T) {
	m := NewMatcher()
	registered := [][]float64{
		{1, 0, 0, 0, 0}, // wrong dimensionality
		unitVectorWithSimilarity(0.9),
	}

	decision := m.MatchBestOfN(probe, registered, 0.6)
	if !decision.Matched || math.Abs(decision.Similarity-0.9) > 1e-9 {
		t.Errorf("decision = %+v, want match at 0.9 from the surviving embedding", decision)
	}
	if decision.BestMatchIndex == nil || *decision.BestMatchIndex != 1 {
		t.Errorf("best match index = %v, want 1", decision.BestMatchIndex)
	}
}

func TestMatchBestOfNNoValidComparisons(t *testing.T) {
	m := NewMatcher()

	for _, registered := range [][][]float64{
		nil,
		{{1, 0, 0}}, // every stored embedding corrupt
	} {
		decision := m.MatchBestOfN(probe, registered, 0.6)
		if decision.Matched || decision.Similarity != 0 || decision.BestMatchIndex != nil {
			t.Errorf("decision = %+v, want unmatched zero decision", decision)
		}
		if decision.ID == "" {
			t.Error("even a failed match is a recorded decision and needs an identifier")
		}
	}
}

// Every decision is its own record; two attempts must never share an ID.
func TestMatchBestOfNDecisionIDsAreUnique(t *testing.T) {
	m := NewMatcher()
	registered := [][]float64{unitVectorWithSimilarity(0.9)}

	first := m.MatchBestOfN(probe, registered, 0.6)
	second := m.MatchBestOfN(probe, registered, 0.6)
	if first.ID == second.ID {
		t.Errorf("both decisions got ID %q", first.ID)
	}
}

func TestDecideUsesDefaultThreshold(t *testing.T) {
	m := NewMatcher()

	if d := m.Decide(probe, [][]float64{unitVectorWithSimilarity(0.7)}); !d.Matched {
		t.Error("similarity 0.7 should match against the default threshold")
	}
	if d := m.Decide(probe, [][]float64{unitVectorWithSimilarity(0.5)}); d.Matched {
		t.Error("similarity 0.5 should not match against the default threshold")
	}
}
