package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/calvora/studyforge/internal/memory"
	"github.com/calvora/studyforge/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage your study plan",
}

var planCreateCmd = &cobra.Command{
	Use:   "create <course-id>",
	Short: "Create a week-by-week plan from the course topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		perWeek, _ := cmd.Flags().GetInt("per-week")
		if perWeek <= 0 {
			perWeek = 2
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		c, err := a.courses.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if len(c.Topics) == 0 {
			return fmt.Errorf("course %q has no topics to plan from", c.Title)
		}

		p, err := a.plans.Create(ctx, userID(cmd), c.ID, lo.Chunk(c.Topics, perWeek))
		if err != nil {
			return err
		}

		fmt.Printf("Created a %d-week plan for %s\n", len(p.Weeks), c.Title)
		printPlan(p)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show the current plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.plans.Get(context.Background(), userID(cmd), args[0])
		if err != nil {
			return err
		}
		printPlan(p)
		return nil
	},
}

var planCompleteCmd = &cobra.Command{
	Use:   "complete <course-id> <week>",
	Short: "Mark a plan week completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var week int
		if _, err := fmt.Sscanf(args[1], "%d", &week); err != nil {
			return fmt.Errorf("invalid week %q: %w", args[1], err)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		user := userID(cmd)
		p, err := a.plans.MarkWeekCompleted(ctx, user, args[0], week)
		if err != nil {
			return err
		}

		// Journal the week's topics so learning patterns pick them up.
		for _, w := range p.Weeks {
			if w.Number != week {
				continue
			}
			_, err = a.memory.Update(ctx, user, args[0], func(m *memory.LearningMemory) {
				for _, topic := range w.Topics {
					m.LogCompletedTopic(topic, time.Now())
				}
			})
			if err != nil {
				return err
			}
		}

		fmt.Printf("Week %d completed.\n", week)
		if cw := p.CurrentWeek(); cw != nil {
			fmt.Printf("Up next: week %d (%s)\n", cw.Number, strings.Join(cw.Topics, ", "))
		} else {
			fmt.Println("Plan finished. Nice work.")
		}
		return nil
	},
}

var planReplanCmd = &cobra.Command{
	Use:   "replan <course-id>",
	Short: "Insert review tasks for your weak topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.agent.SelfReflectAndReplan(context.Background(), userID(cmd), args[0])
		if err != nil {
			return err
		}

		if len(result.WeakTopics) == 0 {
			fmt.Println("No weak topics. No changes made.")
			return nil
		}
		if len(result.Adjustments) == 0 {
			fmt.Printf("Weak topics (%s) already have review tasks scheduled.\n",
				strings.Join(result.WeakTopics, ", "))
			return nil
		}

		for _, adj := range result.Adjustments {
			fmt.Printf("Week %d: added %q\n", adj.WeekNumber, adj.Task)
		}
		return nil
	},
}

func printPlan(p *plan.LearningPlan) {
	for _, w := range p.Weeks {
		fmt.Printf("\nWeek %d [%s] — %s\n", w.Number, w.Status, strings.Join(w.Topics, ", "))
		for _, task := range w.Tasks {
			fmt.Printf("  - %s\n", task)
		}
	}
}

func init() {
	planCreateCmd.Flags().Int("per-week", 2, "Topics per week")

	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planCompleteCmd)
	planCmd.AddCommand(planReplanCmd)
}
