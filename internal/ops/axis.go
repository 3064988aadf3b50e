package ops

import "github.com/born-ml/graphlite/internal/status"

// NormalizeAxis resolves a signed axis against rank: negative axes count
// from the back. The result satisfies 0 <= axis < rank.
func NormalizeAxis(axis, rank int) (int, error) {
	resolved := axis
	if resolved < 0 {
		resolved += rank
	}
	if resolved < 0 || resolved >= rank {
		return 0, status.New(status.InvalidAxis, "axis does not fit operand rank").WithAxis(axis, rank)
	}
	return resolved, nil
}
