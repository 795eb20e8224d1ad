package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwizard/internal/export"
	"github.com/abhisek/quizwizard/internal/quizgen"
)

var exportCmd = &cobra.Command{
	Use:   "export <questions.json>",
	Short: "Render a question set as a Google Forms Apps Script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		source, _ := cmd.Flags().GetString("source")
		out, _ := cmd.Flags().GetString("out")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read question set: %w", err)
		}

		var questions []quizgen.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return fmt.Errorf("parse question set: %w", err)
		}

		script, err := export.AppsScript(questions, export.Options{
			Topic:      topic,
			Difficulty: difficulty,
			SourceName: source,
		})
		if err != nil {
			return err
		}

		if out == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		}
		if err := os.WriteFile(out, []byte(script), 0o644); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("topic", "", "Quiz topic used in the form title")
	exportCmd.Flags().Int("difficulty", 5, "Difficulty level shown in the form description")
	exportCmd.Flags().String("source", "", "Source document name shown in the form description")
	exportCmd.Flags().String("out", "", "Write the script to this file instead of stdout")
}
