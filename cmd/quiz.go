package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calvora/studyforge/internal/course"
	"github.com/calvora/studyforge/internal/quiz"
	"github.com/calvora/studyforge/internal/retrieval"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and take adaptive quizzes",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate <course-id> <topic>",
	Short: "Generate a quiz for a topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		courseID, topic := args[0], args[1]

		q, err := a.quizzes.Generate(ctx, quiz.GenerateInput{
			UserID:              userID(cmd),
			CourseID:            courseID,
			Topic:               topic,
			RequestedDifficulty: quiz.Difficulty(difficulty),
			QuestionCount:       count,
			ContextSnippets:     topicSnippets(ctx, a, courseID, topic),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Quiz %s — %s (%s, %d questions)\n\n", q.ID, q.Topic, q.Difficulty, len(q.Questions))
		for i, question := range q.Questions {
			fmt.Printf("%d. %s\n", i+1, question.Text)
			for j, opt := range question.Options {
				fmt.Printf("   %d) %s\n", j, opt)
			}
			fmt.Println()
		}
		fmt.Printf("Answer with: studyforge quiz submit %s --answers 0,2,...\n", q.ID)
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <quiz-id>",
	Short: "Submit answers for a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersFlag, _ := cmd.Flags().GetString("answers")
		durationSec, _ := cmd.Flags().GetInt("duration")

		answers, err := parseAnswers(answersFlag)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		completed := time.Now()
		started := completed.Add(-time.Duration(durationSec) * time.Second)

		attempt, err := a.quizzes.SubmitAttempt(context.Background(), args[0], started, completed, answers)
		if err != nil {
			return err
		}

		verdict := "FAIL"
		if attempt.Passed {
			verdict = "PASS"
		}
		fmt.Printf("Attempt %d: %d/100 (%s)\n", attempt.AttemptNumber, attempt.PercentageScore, verdict)
		fmt.Printf("Correct: %d  Incorrect: %d\n", attempt.CorrectAnswers, attempt.IncorrectAnswers)
		fmt.Printf("Next difficulty: %s\n", attempt.NextDifficultyRecommended)
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Show a quiz with its performance metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		q, err := a.quizzes.Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Quiz %s — %s (%s, %s)\n", q.ID, q.Topic, q.Difficulty, q.Status)
		m := q.Metrics
		if m.TotalAttempts == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}
		fmt.Printf("Attempts: %d  Best: %d  Lowest: %d  Avg: %d  Pass rate: %d%%\n",
			m.TotalAttempts, m.BestScore, m.LowestScore, m.AverageScore, m.PassRate)
		if weak := q.WeakConcepts(); len(weak) > 0 {
			fmt.Printf("Weak concepts: %s\n", strings.Join(weak, ", "))
		}
		return nil
	},
}

// topicSnippets retrieves course excerpts for the topic so generated
// questions stay grounded in the material. Best effort: an unknown
// course or empty corpus yields no snippets.
func topicSnippets(ctx context.Context, a *app, courseID, topic string) []string {
	c, err := a.courses.Get(ctx, courseID)
	if err != nil {
		return nil
	}

	results := retrieval.Retrieve(course.Corpus(c), topic, a.embedder.Embed(ctx, topic), 4)
	var snippets []string
	for _, r := range results {
		snippets = append(snippets, r.Chunk.Text)
	}
	return snippets
}

func parseAnswers(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("--answers is required")
	}
	var answers []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", part, err)
		}
		answers = append(answers, n)
	}
	return answers, nil
}

func init() {
	quizGenerateCmd.Flags().String("difficulty", "", "Force difficulty (easy, medium, hard)")
	quizGenerateCmd.Flags().Int("count", 0, "Number of questions")
	quizSubmitCmd.Flags().String("answers", "", "Comma-separated selected option indexes, in question order")
	quizSubmitCmd.Flags().Int("duration", 0, "Seconds spent on the quiz")

	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizSubmitCmd)
	quizCmd.AddCommand(quizShowCmd)
}
