package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/smart-image-cli/internal/domain"
)

var errEmptyPrompt = errors.New("prompt file is empty")

func newGenerateCmd(app *app) *cobra.Command {
	var promptFile string
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an image from a prompt file and save the first result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt, err := readPrompt(promptFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := app.client.EnsureSession(ctx); err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			var response domain.DecodedResponse
			err = runSpinner(ctx, cmd.ErrOrStderr(), "Generating image...", func() error {
				var genErr error
				response, genErr = app.client.Generate(ctx, prompt)
				return genErr
			})
			if err != nil {
				return err
			}

			if len(response.Images) == 0 {
				if response.Text != "" {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), response.Text)
				}
				return fmt.Errorf("generate: %w: response has no image", domain.ErrNoContent)
			}

			path, err := app.client.SaveArtifact(ctx, response.Images[0], filepath.Dir(output), filepath.Base(output))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if response.Text != "" {
				if _, err := fmt.Fprintln(out, response.Text); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "Saved %s (%s)\n", path, response.Images[0].Title)
			return err
		},
	}

	cmd.Flags().StringVar(&promptFile, "prompt-file", "", "File containing the prompt")
	cmd.Flags().StringVar(&output, "output", "", "Path of the image to write")
	_ = cmd.MarkFlagRequired("prompt-file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func readPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("%w: %s", errEmptyPrompt, path)
	}

	return prompt, nil
}
