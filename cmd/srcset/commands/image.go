package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/srcset/internal/app"
)

func (c *CLI) newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Generate one image and print its markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alt, _ := cmd.Flags().GetString("alt")
			sizes, _ := cmd.Flags().GetString("sizes")

			out, err := c.app.RenderImage(cmd.Context(), app.ImageOptions{
				Options: options(cmd),
				Source:  args[0],
				Alt:     alt,
				Sizes:   sizes,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("alt", "a", "", "Alternative text of the image (required)")
	cmd.Flags().StringP("sizes", "s", "", "Sizes hint, defaults to 100vw")
	return cmd
}
