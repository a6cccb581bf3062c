package tui

import "errors"

// ErrAborted reports that the respondent interrupted the session (ctrl-c).
var ErrAborted = errors.New("tui: session aborted")
