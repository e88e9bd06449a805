package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Ask the learning assistant something",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		reply, err := e.session.Chat(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(reply.Response)
		fmt.Println()
		for _, s := range reply.Suggestions {
			fmt.Printf("  › %s\n", s)
		}
		return nil
	},
}
