//go:build !mobile

package hearts

import "os"

// DetectEnvironment classifies the host. Desktop builds are unconstrained
// unless HEARTS_CONSTRAINED=1 is set, which is useful for previewing the
// reduced effect locally.
func DetectEnvironment() Environment {
	return Environment{Constrained: os.Getenv("HEARTS_CONSTRAINED") == "1"}
}
