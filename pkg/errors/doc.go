// Package errors provides structured error handling for simple-user-admin.
//
// Services return *Error values carrying a typed ErrorCode; the HTTP layer
// translates them with RenderError into the standard error body:
//
//	{"status": 404, "message": "user not found: ...", "timestamp": "..."}
//
// Validation failures use RenderValidation, which adds a per-field message map
// under "errors".
//
// # Basic Usage
//
//	import "github.com/tendant/simple-user-admin/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeUserNotFound, "user not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCodeRoleNotFound, "role not found: %s", name)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query database")
//
// Error code to HTTP status mapping:
//   - ErrCodeInvalidInput, ErrCodeValidationFailed, ErrCodeEmailExists → 400
//   - ErrCodeUnauthorized, ErrCodeInvalidCredentials → 401
//   - ErrCodeForbidden → 403
//   - ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeRoleNotFound → 404
//   - ErrCodeInternal (and anything unclassified) → 500
package errors
