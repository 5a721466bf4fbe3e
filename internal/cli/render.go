package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// drawFlags holds the flags shared by render, grid, reaction and inspect.
// Flags the user sets override values from --options.
type drawFlags struct {
	output      string
	formats     string
	optionsFile string
	noCache     bool
	refresh     bool

	width, height float64
	pngScale      float64
	rotate        float64
	interactive   bool
	comic         bool
	atomIndices   bool
	bondIndices   bool
	stereo        bool
	noAtomLabels  bool
	noLegends     bool
}

func (f *drawFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.optionsFile, "options", "", "TOML options file (see 'moldraw options')")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "redraw even when a cached drawing exists")

	fs.Float64Var(&f.width, "width", 0, "canvas width in pixels")
	fs.Float64Var(&f.height, "height", 0, "canvas height in pixels")
	fs.Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG pixels per canvas pixel")
	fs.Float64Var(&f.rotate, "rotate", 0, "rotate molecules clockwise by this many degrees")
	fs.BoolVar(&f.interactive, "interactive", false, "highlight atoms and bonds on hover (SVG)")
	fs.BoolVar(&f.comic, "comic", false, "hand-drawn style")
	fs.BoolVar(&f.atomIndices, "atom-indices", false, "annotate atoms with their index")
	fs.BoolVar(&f.bondIndices, "bond-indices", false, "annotate bonds with their index")
	fs.BoolVar(&f.stereo, "stereo", false, "annotate CIP labels and enhanced stereo groups")
	fs.BoolVar(&f.noAtomLabels, "no-atom-labels", false, "draw bonds only")
	fs.BoolVar(&f.noLegends, "no-legends", false, "omit molecule names under drawings")
}

// options builds unvalidated pipeline options: defaults, then --options,
// then flags given on the command line.
func (f *drawFlags) options(cmd *cobra.Command, mode string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.optionsFile != "" {
		if err := pipeline.LoadOptionsFile(f.optionsFile, &opts); err != nil {
			return opts, err
		}
	}
	opts.Mode = mode

	changed := cmd.Flags().Changed
	if changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("png-scale") {
		opts.PNGScale = f.pngScale
	}
	if changed("rotate") {
		opts.Draw.Rotate = f.rotate
	}
	if changed("interactive") {
		opts.Interactive = f.interactive
	}
	if changed("comic") {
		opts.Draw.ComicMode = f.comic
	}
	if changed("atom-indices") {
		opts.Draw.AddAtomIndices = f.atomIndices
	}
	if changed("bond-indices") {
		opts.Draw.AddBondIndices = f.bondIndices
	}
	if changed("stereo") {
		opts.Draw.AddStereoAnnotation = f.stereo
	}
	if changed("no-atom-labels") {
		opts.Draw.NoAtomLabels = f.noAtomLabels
	}
	if changed("no-legends") {
		opts.NoLegends = f.noLegends
	}
	opts.Refresh = f.refresh
	return opts, nil
}

// renderCommand draws a single molecule.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags          drawFlags
		index          int
		legend         string
		highlightAtoms string
		highlightBonds string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw one molecule of a document",
		Long: `Draw one molecule of a JSON or BSON document.

The molecule is picked with --index (default: the first). Its name is
drawn as the legend unless --legend or --no-legends is given. Use - as the
file to read JSON from stdin.`,
		Example: `  moldraw render aspirin.json
  moldraw render library.bson --index 3 -f svg,png -o out/third
  moldraw render aspirin.json --highlight-atoms 0,1,2 --atom-indices`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, pipeline.ModeMolecule)
			if err != nil {
				return err
			}
			opts.Index = index
			opts.Legend = legend
			if highlightAtoms != "" || highlightBonds != "" {
				hl := &moldraw.Highlights{}
				if hl.Atoms, err = parseIndices(highlightAtoms); err != nil {
					return fmt.Errorf("--highlight-atoms: %w", err)
				}
				if hl.Bonds, err = parseIndices(highlightBonds); err != nil {
					return fmt.Errorf("--highlight-bonds: %w", err)
				}
				opts.Highlights = hl
			}
			return c.runDraw(cmd.Context(), args[0], opts, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "i", 0, "index of the molecule to draw")
	cmd.Flags().StringVar(&legend, "legend", "", "legend text (default: the molecule name)")
	cmd.Flags().StringVar(&highlightAtoms, "highlight-atoms", "", "atom indices to highlight (comma-separated)")
	cmd.Flags().StringVar(&highlightBonds, "highlight-bonds", "", "bond indices to highlight (default: bonds between highlighted atoms)")

	return cmd
}

// gridCommand draws every molecule of a document in a grid.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		flags       drawFlags
		columns     int
		panelWidth  float64
		panelHeight float64
	)

	cmd := &cobra.Command{
		Use:   "grid [file]",
		Short: "Draw every molecule of a document in a grid",
		Long: `Draw every molecule of a document in a grid of equal panels.

Molecules share one scale, so equal bond lengths look equal across
panels. The canvas grows with the number of molecules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, pipeline.ModeGrid)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("columns") {
				opts.Columns = columns
			}
			if cmd.Flags().Changed("panel-width") {
				opts.PanelWidth = panelWidth
			}
			if cmd.Flags().Changed("panel-height") {
				opts.PanelHeight = panelHeight
			}
			return c.runDraw(cmd.Context(), args[0], opts, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&columns, "columns", pipeline.DefaultColumns, "molecules per row")
	cmd.Flags().Float64Var(&panelWidth, "panel-width", pipeline.DefaultPanelWidth, "panel width in pixels")
	cmd.Flags().Float64Var(&panelHeight, "panel-height", pipeline.DefaultPanelHeight, "panel height in pixels")

	return cmd
}

// reactionCommand draws the reaction scheme of a document.
func (c *CLI) reactionCommand() *cobra.Command {
	var (
		flags      drawFlags
		byReactant bool
	)

	cmd := &cobra.Command{
		Use:   "reaction [file]",
		Short: "Draw the reaction scheme of a document",
		Long: `Draw reactants, agents and products of a document's reaction,
joined by plus signs and an arrow.

With --highlight-by-reactant, mapped product atoms take the colour of the
reactant they came from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, pipeline.ModeReaction)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("highlight-by-reactant") {
				opts.HighlightByReactant = byReactant
			}
			return c.runDraw(cmd.Context(), args[0], opts, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&byReactant, "highlight-by-reactant", false, "colour atoms by the reactant they come from")

	return cmd
}

// runDraw loads input, draws it and writes the artifacts.
func (c *CLI) runDraw(ctx context.Context, input string, opts pipeline.Options, flags *drawFlags) error {
	doc, err := pipeline.LoadFile(ctx, input)
	if err != nil {
		return err
	}
	return c.drawDocument(ctx, doc, input, opts, flags)
}

// drawDocument draws an already loaded document; input names the output
// files when --output is not given.
func (c *CLI) drawDocument(ctx context.Context, doc *molio.Document, input string, opts pipeline.Options, flags *drawFlags) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s...", opts.Mode))
	spinner.Start()
	res, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Drew %d molecules", res.Stats.Molecules))

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		stdout:    c.Out,
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	printSuccess("Drawing complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Molecules, res.Stats.Atoms, res.CacheHit)
	return nil
}

// parseIndices parses "0,2,5" into indices.
func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stdout    io.Writer
}

// writeArtifacts writes one file per format and returns the paths written.
// With a single format, output is the file name ("-" for stdout). With
// several, output is a base path that gets the format as extension.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 {
		path := p.output
		if path == "" {
			if p.input == "-" {
				path = "-"
			} else {
				path = basePath("", p.input) + "." + p.formats[0]
			}
		}
		if path == "-" {
			_, err := p.stdout.Write(p.artifacts[p.formats[0]])
			return nil, err
		}
		if err := writeFile(path, p.artifacts[p.formats[0]]); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(p.output, p.input)
	if base == "-" || base == "" {
		base = appName
	}
	paths := make([]string, 0, len(p.formats))
	for _, f := range p.formats {
		path := base + "." + f
		if err := writeFile(path, p.artifacts[f]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
