// Package common defines sentinel errors shared by repositories and services.
// Callers should use errors.Is to match these values.
package common

import "errors"

// Repository-level errors.
var ErrorNotFound = errors.New("not found")
