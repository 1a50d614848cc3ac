// Package chunker splits raw document text into retrieval-sized segments.
//
// Chunks are built by greedily packing whole sentences, so a chunk never
// starts or ends mid-sentence. A single sentence longer than the target
// size becomes its own oversized chunk rather than being cut.
package chunker

import "strings"

// DefaultTargetSize is the chunk size used when the caller passes 0 or less.
const DefaultTargetSize = 1000

// Chunk splits text into an ordered list of chunk strings.
//
// Sentences are delimited by '.', '!' or '?'. Sentences accumulate into a
// buffer; when appending the next sentence would make the buffer reach or
// exceed targetSize, the buffer is flushed as a chunk and the sentence
// starts a new one. The remainder is flushed at the end. Each chunk is
// whitespace-trimmed; empty chunks are dropped.
func Chunk(text string, targetSize int) []string {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
	}

	for _, sentence := range sentences {
		if buf.Len() > 0 && buf.Len()+len(sentence) >= targetSize {
			flush()
		}
		buf.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitSentences cuts text after each sentence-terminal rune, keeping the
// terminator attached to its sentence. Trailing text without a terminator
// is returned as a final sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences = append(sentences, text[start:i+1])
			start = i + 1
		}
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}
