package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicsFlag, _ := cmd.Flags().GetString("topics")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var topics []string
		for _, t := range strings.Split(topicsFlag, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}

		c, err := a.ingestor.CreateCourse(context.Background(), args[0], topics)
		if err != nil {
			return err
		}

		fmt.Printf("Created course %s (%s)\n", c.Title, c.ID)
		if len(c.Topics) > 0 {
			fmt.Printf("Topics: %s\n", strings.Join(c.Topics, ", "))
		}
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		courses, err := a.courses.List(context.Background())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Create one with: studyforge course create <title>")
			return nil
		}

		for _, c := range courses {
			fmt.Printf("%s  %-30s  %d materials  %d topics\n",
				c.ID, c.Title, len(c.Materials), len(c.Topics))
		}
		return nil
	},
}

func init() {
	courseCreateCmd.Flags().String("topics", "", "Comma-separated topic list")

	courseCmd.AddCommand(courseCreateCmd)
	courseCmd.AddCommand(courseListCmd)
}
