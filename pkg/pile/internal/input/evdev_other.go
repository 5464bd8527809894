//go:build !linux

package input

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by OpenEvdev outside Linux.
var ErrUnsupported = errors.New("evdev input requires linux")

// OpenEvdev is only available on Linux.
func OpenEvdev(path string) (Source, error) {
	return nil, fmt.Errorf("input: open %s: %w", path, ErrUnsupported)
}
