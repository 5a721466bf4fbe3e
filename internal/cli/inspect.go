package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// inspectCommand lists the molecules of a document, lets the user pick one
// and draws it.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the molecules of a document and draw one",
		Long: `Browse the molecules of a document in an interactive table showing
atom, bond and ring counts. The selected molecule is drawn as with
'moldraw render --index N'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := pipeline.LoadFile(ctx, args[0])
			if err != nil {
				return err
			}
			if len(doc.Molecules) == 0 {
				printWarning("Document has no molecules")
				return nil
			}

			final, err := tea.NewProgram(NewMoleculeListModel(doc.Molecules), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("molecule list: %w", err)
			}
			model, ok := final.(MoleculeListModel)
			if !ok || model.Selected < 0 {
				printInfo("No molecule selected")
				return nil
			}

			opts, err := flags.options(cmd, pipeline.ModeMolecule)
			if err != nil {
				return err
			}
			opts.Index = model.Selected
			return c.drawDocument(ctx, doc, args[0], opts, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}
