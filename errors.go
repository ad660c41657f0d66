package msgfmt

import "errors"

// ErrMissingMessage indicates that no message was found for locale/key.
var ErrMissingMessage = errors.New("msgfmt: missing message")

// ErrArgsWithOptions flags a caller bug: mixing positional arguments and a
// RenderOptions value in the same render call.
var ErrArgsWithOptions = errors.New("msgfmt: positional args cannot be combined with RenderOptions")
