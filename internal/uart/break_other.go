//go:build !linux && !darwin

package uart

import "errors"

var errBreakUnsupported = errors.New("holding a break condition is not supported on this platform")

type breaker struct{}

func openBreaker(string) (*breaker, error) {
	return &breaker{}, nil
}

func (*breaker) set(bool) error {
	return errBreakUnsupported
}

func (*breaker) Close() error {
	return nil
}
