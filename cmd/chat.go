package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwizard/internal/chat"
	"github.com/abhisek/quizwizard/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant with streamed replies",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := openProvider(cmd.Context(), s)
		if err != nil {
			return err
		}

		orch := chat.New(provider, chat.DefaultConfig())
		transcript := &chat.Transcript{}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "QuizWizard assistant. Type a message, or \"exit\" to quit.")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			// History excludes the message being sent; the session
			// appends it itself.
			history := transcript.History()
			transcript.Append(llm.RoleUser, line)

			stream, err := orch.StreamReply(cmd.Context(), history, line)
			if err != nil {
				transcript.AppendError(err.Error())
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}

			replyID := transcript.Append(llm.RoleAssistant, "")
			for {
				frag, err := stream.Recv()
				if err == io.EOF {
					fmt.Fprintln(out)
					break
				}
				if err != nil {
					// The partial reply stands; the failure is a
					// separate message.
					transcript.AppendError(err.Error())
					fmt.Fprintf(out, "\nerror: %v\n", err)
					break
				}
				transcript.AppendText(replyID, frag)
				fmt.Fprint(out, frag)
			}
		}
	},
}
