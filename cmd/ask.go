package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <course-id> <question>",
	Short: "Ask the tutor a question about a course",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		question := strings.Join(args[1:], " ")
		reply, err := a.agent.Respond(context.Background(), userID(cmd), args[0], question)
		if err != nil {
			return err
		}

		fmt.Println(reply.Answer)
		if len(reply.Sources) > 0 {
			fmt.Printf("\nSources: %s\n", strings.Join(reply.Sources, ", "))
		}
		fmt.Printf("Next step: %s\n", reply.SuggestedNextStep)
		return nil
	},
}
