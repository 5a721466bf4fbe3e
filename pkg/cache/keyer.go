package cache

// Keyer builds cache keys. Implementations must give different keys to
// requests that can produce different bytes.
type Keyer interface {
	// RenderKey is the key of a drawing of the document with hash docHash.
	RenderKey(docHash string, opts RenderKeyOpts) string
	// GraphKey is the key of a node-link export of the document.
	GraphKey(docHash string, opts GraphKeyOpts) string
}

// RenderKeyOpts are the request fields that change a drawing.
type RenderKeyOpts struct {
	Mode        string  `json:"mode"`
	Format      string  `json:"format"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	PanelWidth  float64 `json:"panel_width,omitempty"`
	PanelHeight float64 `json:"panel_height,omitempty"`
	Index       int     `json:"index,omitempty"`
	Legend      string  `json:"legend,omitempty"`
	// OptionsHash is [Hash] of the encoded drawing options.
	OptionsHash string `json:"options_hash"`
}

// GraphKeyOpts are the request fields that change a node-link export.
type GraphKeyOpts struct {
	Format    string `json:"format"`
	Index     int    `json:"index,omitempty"`
	Detailed  bool   `json:"detailed,omitempty"`
	UseCoords bool   `json:"use_coords,omitempty"`
}

// DefaultKeyer hashes the options into "render:" and "graph:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts)
}

func (DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts)
}
