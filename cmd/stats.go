package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <course-id>",
	Short: "Show mastery and learning patterns for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		user := userID(cmd)

		snap, err := a.mastery.Snapshot(ctx, user, args[0])
		if err != nil {
			return err
		}

		if len(snap.Topics) == 0 {
			fmt.Println("No mastery data yet. Take a quiz to get started.")
			return nil
		}

		fmt.Printf("%-24s  %7s  %-8s  %8s  %5s/%3s\n",
			"Topic", "Mastery", "Level", "Attempts", "Best", "Low")
		fmt.Println(strings.Repeat("─", 64))
		for _, t := range snap.Topics {
			fmt.Printf("%-24s  %7d  %-8s  %8d  %5d/%3d\n",
				t.Topic, t.MasteryScore, t.Classification, t.QuizAttempts,
				t.HighestQuizScore, t.LowestQuizScore)
		}

		if len(snap.WeakTopics) > 0 {
			fmt.Printf("\nWeak topics: %s\n", strings.Join(snap.WeakTopics, ", "))
		}

		journal, err := a.memory.Load(ctx, user, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("\nCompleted topics: %d  Quizzes taken: %d\n",
			len(journal.CompletedTopics), len(journal.QuizHistory))
		fmt.Printf("Velocity: %.1f topics/week  Consistency: %.0f%% of the last 30 days\n",
			journal.Patterns.VelocityPerWeek, journal.Patterns.ConsistencyScore*100)

		if open := journal.OpenMistakes(); len(open) > 0 {
			fmt.Println("\nRecurring mistakes:")
			for _, mistake := range open {
				fmt.Printf("  %s / %s (seen %dx)\n",
					mistake.Topic, mistake.Concept, mistake.OccurrenceCount)
			}
		}
		return nil
	},
}
