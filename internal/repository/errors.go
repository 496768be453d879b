// Package repository is the data access layer over MySQL.  Sentinel errors
// defined here let handlers distinguish failure scenarios without string
// matching, e.g. mapping ErrEmailExists to an HTTP 409 response.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken.  Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
