package errors

import "math"

// MaxDimension bounds canvas and panel sizes in pixels.
const MaxDimension = 20000

// ValidateDimensions checks a canvas or panel size. Both sides must be
// positive, finite and at most MaxDimension.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidOptions, "dimensions must be finite, got %vx%v", width, height)
		}
		if v <= 0 {
			return New(ErrCodeInvalidOptions, "dimensions must be positive, got %vx%v", width, height)
		}
		if v > MaxDimension {
			return New(ErrCodeInvalidOptions, "dimensions too large (max %d), got %vx%v", MaxDimension, width, height)
		}
	}
	return nil
}
