//go:build mobile

package hearts

// DetectEnvironment classifies the host. Mobile builds are always
// constrained.
func DetectEnvironment() Environment {
	return Environment{Constrained: true}
}
