package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing, invalid or expired credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a valid credential with insufficient role or ownership.
var ErrForbidden = errors.New("forbidden")

// ErrDriveNotConnected indicates the user has no Google Drive credential on record.
var ErrDriveNotConnected = errors.New("google drive not connected")

// ErrDriveAuthExpired indicates the stored Drive credential could not be refreshed
// and the user must re-authenticate with Google.
var ErrDriveAuthExpired = errors.New("google drive session expired")
