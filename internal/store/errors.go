package store

import "errors"

// ErrPartialSession is returned when asked to persist a session with any
// empty field.
var ErrPartialSession = errors.New("refusing to persist partial session")
