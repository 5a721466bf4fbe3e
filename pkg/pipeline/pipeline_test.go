package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FabioUrbina/rdkit/pkg/cache"
	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

func ethanol() *mol.Molecule {
	return &mol.Molecule{
		Name:   "ethanol",
		Atoms:  []mol.Atom{{Element: 6}, {Element: 6}, {Element: 8}},
		Bonds:  []mol.Bond{{Begin: 0, End: 1, Type: mol.BondSingle}, {Begin: 1, End: 2, Type: mol.BondSingle}},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.3, Y: 0.75}, {X: 2.6, Y: 0}},
	}
}

func methane() *mol.Molecule {
	return &mol.Molecule{
		Name:   "methane",
		Atoms:  []mol.Atom{{Element: 6}},
		Coords: []geom.Point{{X: 0, Y: 0}},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidOptions) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"molecule", false},
		{"grid", false},
		{"reaction", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		check  func(*testing.T, Options)
	}{
		{
			name:   "molecule defaults",
			modify: func(*Options) {},
			check: func(t *testing.T, o Options) {
				if o.Mode != ModeMolecule || o.Width != DefaultWidth || o.Height != DefaultHeight {
					t.Errorf("got mode %q size %vx%v", o.Mode, o.Width, o.Height)
				}
				if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
					t.Errorf("Formats = %v, want [svg]", o.Formats)
				}
				if o.PNGScale != DefaultPNGScale || o.Columns != DefaultColumns {
					t.Errorf("PNGScale = %v, Columns = %v", o.PNGScale, o.Columns)
				}
				if o.Logger == nil {
					t.Error("Logger not set")
				}
			},
		},
		{
			name:   "reaction size",
			modify: func(o *Options) { o.Mode = ModeReaction },
			check: func(t *testing.T, o Options) {
				if o.Width != DefaultReactionWidth || o.Height != DefaultReactionHeight {
					t.Errorf("size = %vx%v", o.Width, o.Height)
				}
			},
		},
		{
			name:   "explicit size kept",
			modify: func(o *Options) { o.Width, o.Height = 640, 480 },
			check: func(t *testing.T, o Options) {
				if o.Width != 640 || o.Height != 480 {
					t.Errorf("size = %vx%v", o.Width, o.Height)
				}
			},
		},
		{
			name:   "formats deduplicated",
			modify: func(o *Options) { o.Formats = []string{"png", "svg", "png"} },
			check: func(t *testing.T, o Options) {
				if strings.Join(o.Formats, ",") != "png,svg" {
					t.Errorf("Formats = %v", o.Formats)
				}
			},
		},
		{
			name:   "zero draw options replaced",
			modify: func(o *Options) { o.Draw.BaseFontSize = 0 },
			check: func(t *testing.T, o Options) {
				if o.Draw.BaseFontSize <= 0 {
					t.Errorf("BaseFontSize = %v", o.Draw.BaseFontSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatalf("ValidateAndSetDefaults: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"bad mode", func(o *Options) { o.Mode = "tower" }},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }},
		{"negative index", func(o *Options) { o.Index = -1 }},
		{"negative width", func(o *Options) { o.Width = -10 }},
		{"huge panel", func(o *Options) { o.PanelHeight = 1e9 }},
		{"bad padding", func(o *Options) { o.Draw.Padding = 0.7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("error = %v, want INVALID_OPTIONS", err)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != len(first) || opts.Width != DefaultWidth {
		t.Errorf("second call changed options: %+v", opts)
	}
}

func TestRenderKeyOpts(t *testing.T) {
	a := DefaultOptions()
	b := DefaultOptions()
	b.Draw.AddAtomIndices = true
	for _, o := range []*Options{&a, &b} {
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
	}
	ka, kb := a.RenderKeyOpts(FormatSVG), b.RenderKeyOpts(FormatSVG)
	if ka.OptionsHash == kb.OptionsHash {
		t.Error("drawing options should change the options hash")
	}
	if ka != a.RenderKeyOpts(FormatSVG) {
		t.Error("key options should be stable")
	}

	g := DefaultOptions()
	g.Mode = ModeGrid
	g.Width = 999
	if err := g.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	kg := g.RenderKeyOpts(FormatPNG)
	if kg.Width != 0 || kg.PanelWidth != DefaultPanelWidth {
		t.Errorf("grid key = %+v, want panel size only", kg)
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		n, columns   int
		wantW, wantH float64
	}{
		{"molecule", ModeMolecule, 3, 4, DefaultWidth, DefaultHeight},
		{"grid partial row", ModeGrid, 3, 4, 3 * DefaultPanelWidth, DefaultPanelHeight},
		{"grid two rows", ModeGrid, 5, 4, 4 * DefaultPanelWidth, 2 * DefaultPanelHeight},
		{"grid exact", ModeGrid, 4, 2, 2 * DefaultPanelWidth, 2 * DefaultPanelHeight},
		{"grid empty", ModeGrid, 0, 4, DefaultPanelWidth, DefaultPanelHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = tt.mode
			opts.Columns = tt.columns
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatal(err)
			}
			doc := &molio.Document{}
			for range tt.n {
				doc.Molecules = append(doc.Molecules, methane())
			}
			w, h := CanvasSize(doc, opts)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("CanvasSize = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	src := `
mode = "grid"
columns = 3
formats = ["svg", "json"]

[draw]
bond_line_width = 1.5
add_atom_indices = true
highlight_colour = "#ff0000"
`
	opts := DefaultOptions()
	if err := DecodeOptions(strings.NewReader(src), &opts); err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if opts.Mode != ModeGrid || opts.Columns != 3 || len(opts.Formats) != 2 {
		t.Errorf("top level = %q %d %v", opts.Mode, opts.Columns, opts.Formats)
	}
	if opts.Draw.BondLineWidth != 1.5 || !opts.Draw.AddAtomIndices {
		t.Errorf("draw = %+v", opts.Draw)
	}
	if !opts.Draw.HighlightColour.Equal(canvas.Red) {
		t.Errorf("HighlightColour = %v", opts.Draw.HighlightColour)
	}
	// Keys absent from the file keep their defaults.
	if opts.Draw.BaseFontSize != DefaultOptions().Draw.BaseFontSize {
		t.Errorf("BaseFontSize = %v", opts.Draw.BaseFontSize)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("decoded options invalid: %v", err)
	}
}

func TestDecodeOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "colums = 3\n"},
		{"unknown draw key", "[draw]\nbond_width = 2\n"},
		{"bad syntax", "mode = \n"},
		{"bad colour", "[draw]\nlegend_colour = \"blue-ish\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			err := DecodeOptions(strings.NewReader(tt.src), &opts)
			if !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("error = %v, want INVALID_OPTIONS", err)
			}
		})
	}
}

func TestWriteOptionsReadable(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeReaction
	opts.Draw.Rotate = 90

	var buf bytes.Buffer
	if err := WriteOptions(&buf, opts); err != nil {
		t.Fatalf("WriteOptions: %v", err)
	}
	got := DefaultOptions()
	if err := DecodeOptions(&buf, &got); err != nil {
		t.Fatalf("DecodeOptions: %v\n%s", err, buf.String())
	}
	if got.Mode != ModeReaction || got.Draw.Rotate != 90 {
		t.Errorf("got mode %q rotate %v", got.Mode, got.Draw.Rotate)
	}
}

func TestLoadOptionsFileMissing(t *testing.T) {
	opts := DefaultOptions()
	err := LoadOptionsFile(filepath.Join(t.TempDir(), "nope.toml"), &opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol()}}
	if err := molio.Export(doc, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got.Molecules) != 1 || got.Molecules[0].Name != "ethanol" {
		t.Errorf("loaded %+v", got.Molecules)
	}

	if _, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader("{not json"), molio.FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestDraw(t *testing.T) {
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol(), methane()}}

	tests := []struct {
		name      string
		modify    func(*Options)
		wantPanes int
		wantText  string
	}{
		{"first molecule", func(*Options) {}, 1, "ethanol"},
		{"second molecule", func(o *Options) { o.Index = 1 }, 1, "methane"},
		{"legend override", func(o *Options) { o.Legend = "EtOH" }, 1, "EtOH"},
		{"grid", func(o *Options) { o.Mode = ModeGrid }, 2, "methane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Fatal(err)
			}
			w, h := CanvasSize(doc, opts)
			rec := canvas.NewRecorder(w, h)
			meta, err := Draw(context.Background(), rec, doc, opts, text.ApproxMeasurer{})
			if err != nil {
				t.Fatalf("Draw: %v", err)
			}
			if len(meta.Atoms) != tt.wantPanes {
				t.Errorf("metadata has %d molecules, want %d", len(meta.Atoms), tt.wantPanes)
			}
			var legend strings.Builder
			for _, op := range rec.Filter(func(op canvas.Op) bool {
				return op.Kind == canvas.OpString && op.Style.Tag.Kind == canvas.TagLegend
			}) {
				legend.WriteString(op.Text)
			}
			if !strings.Contains(legend.String(), tt.wantText) {
				t.Errorf("legend text %q does not contain %q", legend.String(), tt.wantText)
			}
		})
	}
}

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *molio.Document
		mode string
		idx  int
	}{
		{"empty molecule", &molio.Document{}, ModeMolecule, 0},
		{"index out of range", &molio.Document{Molecules: []*mol.Molecule{methane()}}, ModeMolecule, 1},
		{"empty grid", &molio.Document{}, ModeGrid, 0},
		{"no reaction", &molio.Document{Molecules: []*mol.Molecule{methane()}}, ModeReaction, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = tt.mode
			opts.Index = tt.idx
			rec := canvas.NewRecorder(300, 300)
			_, err := Draw(context.Background(), rec, tt.doc, opts, text.ApproxMeasurer{})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDrawCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := &molio.Document{Molecules: []*mol.Molecule{methane()}}
	if _, err := Draw(ctx, canvas.NewRecorder(100, 100), doc, DefaultOptions(), nil); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestRender(t *testing.T) {
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol()}}
	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatJSON, FormatPNG}

	artifacts, meta, err := Render(context.Background(), doc, opts, text.ApproxMeasurer{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(meta.Atoms) != 1 || len(meta.Atoms[0]) != 3 {
		t.Errorf("metadata atoms = %v", meta.Atoms)
	}
	if svg := string(artifacts[FormatSVG]); !strings.Contains(svg, "<svg") {
		t.Errorf("svg output = %.80q", svg)
	}
	if png := artifacts[FormatPNG]; !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("png output starts %q", png[:min(8, len(png))])
	}
	var out struct {
		Width float64           `json:"width"`
		Ops   []json.RawMessage `json:"ops"`
	}
	if err := json.Unmarshal(artifacts[FormatJSON], &out); err != nil {
		t.Fatalf("json output: %v", err)
	}
	if out.Width != DefaultWidth || len(out.Ops) == 0 {
		t.Errorf("json width %v with %d ops", out.Width, len(out.Ops))
	}
}

func TestRenderGraphDOT(t *testing.T) {
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol()}}
	data, err := RenderGraph(context.Background(), doc, GraphOptions{Format: FormatDOT})
	if err != nil {
		t.Fatalf("RenderGraph: %v", err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("dot output = %.40q", data)
	}

	if _, err := RenderGraph(context.Background(), doc, GraphOptions{Format: "gif"}); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("bad format error = %v", err)
	}
	if _, err := RenderGraph(context.Background(), doc, GraphOptions{Format: FormatDOT, Index: 4}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad index error = %v", err)
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	r.Measurer = text.ApproxMeasurer{}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRunnerExecuteCaches(t *testing.T) {
	r := newTestRunner(t)
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol()}}
	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatJSON}
	ctx := context.Background()

	first, err := r.Execute(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Atoms != 3 || first.Stats.Molecules != 1 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := r.Execute(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.DocHash != first.DocHash {
		t.Errorf("doc hash changed: %s != %s", second.DocHash, first.DocHash)
	}
	if !bytes.Equal(second.Artifacts[FormatSVG], first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from the drawn one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	other := DefaultOptions()
	other.Formats = opts.Formats
	other.Draw.AddAtomIndices = true
	fourth, err := r.Execute(ctx, doc, other)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if fourth.CacheHit {
		t.Error("different drawing options should miss the cache")
	}
}

func TestRunnerExecuteNilDoc(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), nil, DefaultOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v", err)
	}
}

func TestRunnerGraphCaches(t *testing.T) {
	r := newTestRunner(t)
	doc := &molio.Document{Molecules: []*mol.Molecule{ethanol()}}
	ctx := context.Background()

	data, hit, err := r.Graph(ctx, doc, GraphOptions{Format: FormatDOT}, false)
	if err != nil || hit {
		t.Fatalf("Graph: hit=%v err=%v", hit, err)
	}
	again, hit, err := r.Graph(ctx, doc, GraphOptions{Format: FormatDOT}, false)
	if err != nil || !hit {
		t.Fatalf("Graph: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(data, again) {
		t.Error("cached graph differs")
	}
}

func TestRenderBatch(t *testing.T) {
	r := newTestRunner(t)
	var jobs []Job
	for _, m := range []*mol.Molecule{ethanol(), methane(), ethanol()} {
		jobs = append(jobs, Job{Doc: &molio.Document{Molecules: []*mol.Molecule{m}}, Opts: DefaultOptions()})
	}

	results, err := r.RenderBatch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res == nil || len(res.Artifacts[FormatSVG]) == 0 {
			t.Errorf("job %d has no svg", i)
		}
	}
	if results[0].DocHash != results[2].DocHash || results[0].DocHash == results[1].DocHash {
		t.Error("doc hashes should follow document content")
	}
}

func TestRenderBatchError(t *testing.T) {
	r := newTestRunner(t)
	jobs := []Job{
		{Doc: &molio.Document{Molecules: []*mol.Molecule{methane()}}, Opts: DefaultOptions()},
		{Doc: &molio.Document{}, Opts: DefaultOptions()},
	}
	_, err := r.RenderBatch(context.Background(), jobs, 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
	if err != nil && !strings.Contains(err.Error(), "job 1") {
		t.Errorf("error %q does not name the job", err)
	}
}
