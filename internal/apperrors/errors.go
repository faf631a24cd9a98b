package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates failed credential or token verification.
// Ambiguous verification outcomes map here as well: authentication fails closed.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrStoreUnavailable indicates the user-record store did not answer within the
// configured deadline or is otherwise unreachable.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrUpload indicates a media object could not be stored remotely.
var ErrUpload = errors.New("media upload failed")
