package mol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

// ParseFieldDisp reads the display position of a data Sgroup from its
// molfile FIELDDISP record. The x and y fields occupy columns 0-9 and
// 10-19; column 25 is 'R' for a position relative to the first atom of the
// group and 'A' for an absolute one.
func ParseFieldDisp(s string) (pos geom.Point, relative bool, err error) {
	if len(s) < 26 {
		return geom.Point{}, false, fmt.Errorf("FIELDDISP too short: %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(s[0:10]), 64)
	if err != nil {
		return geom.Point{}, false, fmt.Errorf("FIELDDISP x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(s[10:20]), 64)
	if err != nil {
		return geom.Point{}, false, fmt.Errorf("FIELDDISP y: %w", err)
	}
	return geom.Pt(x, y), s[25] == 'R', nil
}
