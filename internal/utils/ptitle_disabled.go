//go:build amd64

package utils

// SetProcTitle is a no-op on amd64 development hosts.
func SetProcTitle(title string) {}
