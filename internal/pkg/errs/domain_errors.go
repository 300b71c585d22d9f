package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Record errors
	ErrRecordNotFound = errors.New("record not found")

	// Mutation errors
	ErrNotOwnedByCaller  = errors.New("record not owned by caller")
	ErrMutationInFlight  = errors.New("mutation already in flight")
	ErrAssetUploadFailed = errors.New("asset upload failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Session errors
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired")
)
