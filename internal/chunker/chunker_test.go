package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk_SingleChunkWhenUnderTarget(t *testing.T) {
	chunks := Chunk("One. Two. Three.", 1000)

	assert.Equal(t, []string{"One. Two. Three."}, chunks)
}

func TestChunk_FlushesWhenTargetReached(t *testing.T) {
	chunks := Chunk("One. Two. Three.", 8)

	assert.Equal(t, []string{"One.", "Two.", "Three."}, chunks)
}

func TestChunk_SentenceBoundariesPreserved(t *testing.T) {
	text := "Is this a question? Yes! And a statement."
	chunks := Chunk(text, 25)

	assert.Equal(t, []string{"Is this a question? Yes!", "And a statement."}, chunks)
}

func TestChunk_OversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."
	chunks := Chunk("Short. "+long, 30)

	assert.Len(t, chunks, 2)
	assert.Equal(t, "Short.", chunks[0])
	assert.Greater(t, len(chunks[1]), 30)
}

func TestChunk_TrailingTextWithoutTerminator(t *testing.T) {
	chunks := Chunk("First sentence. trailing fragment", 1000)

	assert.Equal(t, []string{"First sentence. trailing fragment"}, chunks)
}

func TestChunk_EmptyInput(t *testing.T) {
	assert.Nil(t, Chunk("", 1000))
	assert.Nil(t, Chunk("   ", 1000))
}

func TestChunk_ZeroTargetUsesDefault(t *testing.T) {
	text := strings.Repeat("This sentence is about forty chars long. ", 60)
	chunks := Chunk(text, 0)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		// Greedy packing keeps chunks near the default target.
		assert.LessOrEqual(t, len(c), DefaultTargetSize+1)
	}
}
