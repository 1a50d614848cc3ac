package agent

import (
	"fmt"
	"strings"

	"github.com/calvora/studyforge/internal/retrieval"
)

const tutorSystemPrompt = `You are a patient course tutor for an online learning platform.

Rules:
- Answer using the provided course material excerpts whenever they are relevant. Cite the excerpt number like [1] when you draw on it.
- If the excerpts do not cover the question, say so before answering from general knowledge.
- When weak topics are listed, connect the answer back to them where it helps the learner.
- Be concise: a few short paragraphs at most.
- Plain text only. No markdown, no LaTeX.`

// buildTutorMessage assembles the grounded chat request.
func buildTutorMessage(courseTitle, message string, results []retrieval.Result, weakTopics []string, completedTopics int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", courseTitle)
	fmt.Fprintf(&b, "Question: %s\n", message)

	if completedTopics > 0 {
		fmt.Fprintf(&b, "The learner has completed %d topics so far.\n", completedTopics)
	}
	if len(weakTopics) > 0 {
		fmt.Fprintf(&b, "The learner is currently weak on: %s\n",
			strings.Join(weakTopics, ", "))
	}

	if len(results) > 0 {
		b.WriteString("\nCourse material excerpts:\n")
		for i, r := range results {
			fmt.Fprintf(&b, "[%d] (%s) %s\n", i+1, r.Chunk.Source, r.Chunk.Text)
		}
	} else {
		b.WriteString("\nNo course material matched this question.\n")
	}

	return b.String()
}
