package canvas

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadColour is returned when a colour string cannot be parsed.
var ErrBadColour = errors.New("invalid colour")

// Colour is an RGBA colour with components in [0, 1].
//
// Colours marshal to and from text as "#rrggbb", or "#rrggbbaa" when not
// fully opaque, so they can be written directly in TOML and JSON option
// files.
type Colour struct {
	R, G, B, A float64
}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Colour { return Colour{R: r, G: g, B: b, A: 1} }

// RGBA returns a colour with the given alpha.
func RGBA(r, g, b, a float64) Colour { return Colour{R: r, G: g, B: b, A: a} }

var (
	Black     = RGB(0, 0, 0)
	White     = RGB(1, 1, 1)
	Red       = RGB(1, 0, 0)
	QueryGrey = RGB(0.5, 0.5, 0.5)
	DarkGrey  = RGB(0.2, 0.2, 0.2)
)

// ParseColour parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColour(s string) (Colour, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Colour{}, fmt.Errorf("%w: %q", ErrBadColour, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("%w: %q", ErrBadColour, s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Colour{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex returns the colour as "#rrggbb", ignoring alpha.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", byteOf(c.R), byteOf(c.G), byteOf(c.B))
}

// Opaque reports whether alpha is 1.
func (c Colour) Opaque() bool { return byteOf(c.A) == 0xff }

func (c Colour) String() string {
	if c.Opaque() {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), byteOf(c.A))
}

// Equal reports whether c and o are the same 8-bit colour.
func (c Colour) Equal(o Colour) bool {
	return byteOf(c.R) == byteOf(o.R) && byteOf(c.G) == byteOf(o.G) &&
		byteOf(c.B) == byteOf(o.B) && byteOf(c.A) == byteOf(o.A)
}

func (c Colour) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Colour) UnmarshalText(b []byte) error {
	v, err := ParseColour(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func byteOf(f float64) uint8 {
	return uint8(math.Round(max(0, min(1, f)) * 255))
}
