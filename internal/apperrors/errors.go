package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates an operation that would violate a ledger precondition,
// e.g. a fund withdrawal that would drive the balance negative.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrSchema indicates that an imported file's structure could not be recognized.
var ErrSchema = errors.New("unrecognizable file schema")

// ErrPersistence indicates an underlying store failure during commit.
var ErrPersistence = errors.New("persistence failure")
