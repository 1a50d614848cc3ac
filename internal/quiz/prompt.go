package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a course tutor writing quiz questions for an online learning platform.

Rules:
- Generate exactly the requested number of multiple-choice questions for the given topic and difficulty.
- Each question has exactly 4 options with exactly one correct option. Distractors should reflect plausible misunderstandings, not random values.
- Match the requested difficulty: "easy" tests recall, "medium" tests understanding, "hard" tests application and analysis.
- Tag every question with 1-3 short concept names describing what it tests. Reuse the same tag for the same concept across questions.
- Keep explanations to two or three sentences.
- When course material excerpts are provided, base questions only on those excerpts.
- Plain text only. No markdown, no LaTeX.`

// buildUserMessage constructs the generation request from the input.
func buildUserMessage(input GenerateInput, difficulty Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	if len(input.WeakConcepts) > 0 {
		fmt.Fprintf(&b, "Focus extra attention on these weak concepts: %s\n",
			strings.Join(input.WeakConcepts, ", "))
	}

	if len(input.ContextSnippets) > 0 {
		b.WriteString("\nCourse material excerpts:\n")
		for i, snippet := range input.ContextSnippets {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, snippet)
		}
	}

	return b.String()
}
