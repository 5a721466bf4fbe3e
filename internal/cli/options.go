package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// optionsCommand prints or writes the default options as TOML, as a
// starting point for --options files.
func (c *CLI) optionsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the default drawing options as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.DefaultOptions()
			if output == "" {
				return pipeline.WriteOptions(c.Out, opts)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := pipeline.WriteOptions(f, opts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Options written")
			printFile(output)
			printNextStep("Use them with", "moldraw render --options "+output+" molecule.json")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
