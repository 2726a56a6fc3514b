package problemgen

import "errors"

// ErrNoRoom is returned by Generate when a vertex's demand could not be
// placed on any chip after every live chip was tried.
var ErrNoRoom = errors.New("problemgen: no chip has room for a generated vertex")
