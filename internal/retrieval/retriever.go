// Package retrieval ranks course chunks against a learner query.
//
// Ranking prefers cosine similarity over stored embeddings. When no usable
// similarity can be computed for the corpus (no chunk has a vector, the
// query vector is missing, or every score comes out zero) retrieval falls
// through to keyword overlap. The fallback is a degraded-but-functional
// mode, not an error path.
package retrieval

import (
	"math"
	"sort"
	"strings"
)

// minKeywordLen filters out short stopword-like query tokens.
const minKeywordLen = 3

// Chunk is the unit of retrieval: a text segment with its stored embedding
// and enough metadata to attribute the snippet back to its material.
type Chunk struct {
	ID         string
	MaterialID string
	Source     string // material title, used for attribution in prompts
	Position   int
	Text       string
	Embedding  []float64
}

// Result is a chunk with its ranking score.
type Result struct {
	Chunk Chunk
	Score float64
}

// Retrieve returns the topK highest-ranked chunks for the query.
//
// queryVec may be empty when the embedding provider failed for the query;
// the keyword fallback then takes over. Ties keep corpus insertion order.
// topK larger than the corpus returns everything ranked.
func Retrieve(corpus []Chunk, query string, queryVec []float64, topK int) []Result {
	if len(corpus) == 0 || topK <= 0 {
		return nil
	}

	results := rankBySimilarity(corpus, queryVec)
	if results == nil {
		results = rankByKeywords(corpus, query)
	}

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// rankBySimilarity scores the corpus by cosine similarity. It returns nil
// when no usable score exists, signalling the caller to fall back.
func rankBySimilarity(corpus []Chunk, queryVec []float64) []Result {
	if len(queryVec) == 0 {
		return nil
	}

	results := make([]Result, 0, len(corpus))
	usable := false
	for _, c := range corpus {
		score := cosineSimilarity(queryVec, c.Embedding)
		if score != 0 {
			usable = true
		}
		results = append(results, Result{Chunk: c, Score: score})
	}

	// Uniformly zero scores mean partial or failed embedding coverage;
	// treat the corpus as having no usable similarity signal.
	if !usable {
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// rankByKeywords scores each chunk by how many query tokens (longer than
// minKeywordLen) it contains, case-insensitive. Zero-score chunks drop out.
func rankByKeywords(corpus []Chunk, query string) []Result {
	var keywords []string
	for _, tok := range strings.Fields(query) {
		if len(tok) > minKeywordLen {
			keywords = append(keywords, strings.ToLower(tok))
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	var results []Result
	for _, c := range corpus {
		text := strings.ToLower(c.Text)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > 0 {
			results = append(results, Result{Chunk: c, Score: float64(score)})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// cosineSimilarity returns dot(a,b)/(|a|*|b|), or 0 when either vector is
// empty, mismatched in length, or zero-magnitude.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
