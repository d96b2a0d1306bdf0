// Package inhibit holds a logind inhibitor lock so the host does not
// suspend while a charger is being simulated.
package inhibit

import "fmt"

// Lock is a held inhibitor. It is released when its descriptor is closed.
type Lock struct {
	fd  int
	why string
}

// Active reports whether the lock is still held.
func (l *Lock) Active() bool {
	return l != nil && l.fd >= 0
}

func (l *Lock) String() string {
	return fmt.Sprintf("inhibitor(%q, fd %d)", l.why, l.fd)
}
