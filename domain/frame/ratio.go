package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRatio is returned when a ratio expression does not evaluate to a
// positive finite number.
var ErrInvalidRatio = errors.New("invalid ratio")

// ParseRatio evaluates a ratio expression. Plain decimals ("1.5"), rationals
// ("4/3", "16:9") and the name "golden" are accepted.
func ParseRatio(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "golden" {
		return GoldenRatio, nil
	}
	sep := strings.IndexAny(s, "/:")
	if sep < 0 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
		}
		return checkRatio(v, s)
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(s[:sep]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(s[sep+1:]), 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	return checkRatio(num/den, s)
}

func checkRatio(v float64, src string) (float64, error) {
	if !(v > 0) || v > 1e6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRatio, src)
	}
	return v, nil
}
