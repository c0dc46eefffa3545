package model

import "errors"

// ErrInvalidURL is returned when an audit target URL cannot be parsed or
// lacks a host.
var ErrInvalidURL = errors.New("invalid audit target URL")
