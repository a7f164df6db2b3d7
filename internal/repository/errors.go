// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver specific errors. For example, ErrScholarshipNotFound
// signals that a lookup by id matched no row and should surface as an
// HTTP 404, while ErrProfileNotFound aborts a matching request.
package repository

import "errors"

// ErrScholarshipNotFound is returned when a scholarship cannot be found.
var ErrScholarshipNotFound = errors.New("scholarship not found")

// ErrProfileNotFound is returned when no user profile exists for an email.
var ErrProfileNotFound = errors.New("profile not found")

// ErrEmailExists is returned on registration when the email is taken.
var ErrEmailExists = errors.New("email already exists")
