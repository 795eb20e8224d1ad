package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwizard/internal/ingest"
	"github.com/abhisek/quizwizard/internal/quizgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate a question set from a PDF or Word document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		topic, _ := cmd.Flags().GetString("topic")
		out, _ := cmd.Flags().GetString("out")

		log := newLogger(cmd)

		doc, err := ingest.EncodeFile(args[0])
		if err != nil {
			return err
		}
		log.Info().Str("document", doc.Name).Str("mime", doc.MIMEType).Msg("document ingested")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := openProvider(cmd.Context(), s)
		if err != nil {
			return err
		}

		cfg := quizgen.DefaultConfig()
		cfg.Logger = log

		pipeline := quizgen.New(provider, cfg)
		questions, err := pipeline.Generate(cmd.Context(), doc, quizgen.Params{
			Topic:      topic,
			Difficulty: difficulty,
			Count:      count,
		})
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			return fmt.Errorf("encode question set: %w", err)
		}
		encoded = append(encoded, '\n')

		if out == "" {
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		}
		if err := os.WriteFile(out, encoded, 0o644); err != nil {
			return fmt.Errorf("write question set: %w", err)
		}
		log.Info().Str("path", out).Int("questions", len(questions)).Msg("question set written")
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("difficulty", 5, "Difficulty level (1-10)")
	generateCmd.Flags().Int("count", 5, "Number of questions (1-20)")
	generateCmd.Flags().String("topic", "", "Topic to focus extraction on")
	generateCmd.Flags().String("out", "", "Write the question set JSON to this file instead of stdout")
}
