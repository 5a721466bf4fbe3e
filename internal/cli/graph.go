package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// graphCommand exports the molecular graph of one molecule through Graphviz.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		opts    pipeline.GraphOptions
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Export a molecule as a Graphviz node-link diagram",
		Long: `Export the atoms and bonds of one molecule as a node-link diagram.

The dot format is the Graphviz source; svg, png and pdf are laid out by
Graphviz. With --coords, nodes are pinned to the molecule's 2D
coordinates instead of being placed by the layout engine.`,
		Example: `  moldraw graph caffeine.json -f dot
  moldraw graph caffeine.json --detailed --coords -o caffeine-graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(c.Logger)

			doc, err := pipeline.LoadFile(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			data, hit, err := runner.Graph(ctx, doc, opts, refresh)
			if err != nil {
				return err
			}
			prog.done("Exported molecular graph")

			format := opts.Format
			if format == "" {
				format = pipeline.FormatSVG
			}
			paths, err := writeArtifacts(artifactWriteParams{
				artifacts: map[string][]byte{format: data},
				formats:   []string{format},
				input:     args[0],
				output:    output,
				stdout:    c.Out,
			})
			if err != nil || len(paths) == 0 {
				return err
			}
			printSuccess("Graph exported")
			printFile(paths[0])
			printStats(1, doc.Molecules[opts.Index].NumAtoms(), hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", pipeline.FormatSVG, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; - for stdout")
	cmd.Flags().IntVarP(&opts.Index, "index", "i", 0, "index of the molecule to export")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with charges and hydrogens, edges with bond types")
	cmd.Flags().BoolVar(&opts.UseCoords, "coords", false, "pin nodes to the molecule's coordinates")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG pixels per point")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-export even when a cached result exists")

	return cmd
}
