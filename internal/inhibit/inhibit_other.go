//go:build !linux

package inhibit

import "errors"

// Acquire is only supported where logind exists.
func Acquire(who, why string) (*Lock, error) {
	return nil, errors.New("suspend inhibitor not supported on this platform")
}

// Release is a no-op.
func (l *Lock) Release() error {
	return nil
}
