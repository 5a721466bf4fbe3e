package mol

import "errors"

// ErrInvalid is wrapped by every structural error reported by Validate.
var ErrInvalid = errors.New("invalid molecule")
