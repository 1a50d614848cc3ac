package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedCorpus() []Chunk {
	return []Chunk{
		{ID: "a", Text: "alpha", Embedding: []float64{1, 0}},
		{ID: "b", Text: "beta", Embedding: []float64{0, 1}},
		{ID: "c", Text: "gamma", Embedding: []float64{0.9, 0.1}},
	}
}

func TestRetrieve_RanksByCosineSimilarity(t *testing.T) {
	results := Retrieve(embeddedCorpus(), "query", []float64{1, 0}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Chunk.ID)
	assert.Equal(t, "c", results[1].Chunk.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRetrieve_TopKLargerThanCorpus(t *testing.T) {
	results := Retrieve(embeddedCorpus(), "query", []float64{1, 0}, 10)

	assert.Len(t, results, 3)
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	assert.Nil(t, Retrieve(nil, "query", []float64{1, 0}, 5))
}

func TestRetrieve_KeywordFallbackWithoutEmbeddings(t *testing.T) {
	corpus := []Chunk{
		{ID: "a", Text: "Photosynthesis converts light into energy."},
		{ID: "b", Text: "Mitochondria produce energy through respiration and more energy words."},
		{ID: "c", Text: "The water cycle moves moisture around."},
	}

	results := Retrieve(corpus, "energy respiration", nil, 5)

	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Chunk.ID)
	assert.Equal(t, float64(2), results[0].Score)
	assert.Equal(t, "a", results[1].Chunk.ID)
}

func TestRetrieve_MissingQueryVectorFallsThroughToKeywords(t *testing.T) {
	// Chunks carry embeddings, but the query embedding is unavailable.
	corpus := embeddedCorpus()
	corpus[1].Text = "keyword match lives here"

	results := Retrieve(corpus, "keyword", nil, 5)

	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Chunk.ID)
}

func TestRetrieve_UniformZeroScoresFallThrough(t *testing.T) {
	// No chunk has an embedding, so every cosine score is zero even
	// though the query vector exists.
	corpus := []Chunk{
		{ID: "a", Text: "nothing relevant"},
		{ID: "b", Text: "contains magnetism twice: magnetism"},
	}

	results := Retrieve(corpus, "magnetism", []float64{1, 0}, 5)

	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Chunk.ID)
}

func TestRetrieve_ShortQueryTokensIgnored(t *testing.T) {
	corpus := []Chunk{{ID: "a", Text: "a an the of is"}}

	assert.Nil(t, Retrieve(corpus, "a an the", nil, 5))
}

func TestRetrieve_TiesKeepInsertionOrder(t *testing.T) {
	corpus := []Chunk{
		{ID: "first", Text: "x", Embedding: []float64{1, 0}},
		{ID: "second", Text: "y", Embedding: []float64{1, 0}},
	}

	results := Retrieve(corpus, "q", []float64{1, 0}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Chunk.ID)
	assert.Equal(t, "second", results[1].Chunk.ID)
}

func TestCosineSimilarity_Degenerate(t *testing.T) {
	assert.Zero(t, cosineSimilarity(nil, []float64{1}))
	assert.Zero(t, cosineSimilarity([]float64{1, 2}, []float64{1}))
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}
