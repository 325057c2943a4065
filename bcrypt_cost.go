//go:build !race

package auth

func passwordHashCost() int {
	// Work factor 12, roughly 250ms per hash on current hardware.
	return 12
}
