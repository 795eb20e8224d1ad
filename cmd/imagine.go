package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwizard/internal/llm"
)

var imagineCmd = &cobra.Command{
	Use:   "imagine <prompt>",
	Short: "Generate an illustration for teaching materials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetString("size")
		out, _ := cmd.Flags().GetString("out")

		log := newLogger(cmd)

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := openProvider(cmd.Context(), s)
		if err != nil {
			return err
		}

		imager, ok := provider.(llm.ImageProvider)
		if !ok {
			return &llm.ErrImageUnsupported{Provider: provider.ModelID()}
		}

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeImage)
		resp, err := imager.GenerateImage(ctx, llm.ImageRequest{
			Prompt: args[0],
			Size:   size,
		})
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, resp.Data, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		log.Info().Str("path", out).Str("size", size).Int("bytes", len(resp.Data)).Msg("image written")
		return nil
	},
}

func init() {
	imagineCmd.Flags().String("size", "1K", "Output resolution (1K, 2K, 4K; 2K and 4K need a funded project key)")
	imagineCmd.Flags().String("out", "image.png", "Write the image to this file")
}
