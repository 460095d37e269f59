package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatSchema     ErrorCategory = "schema"     // Root document unrecoverable
	ErrCatValidation ErrorCategory = "validation" // Invalid input
	ErrCatState      ErrorCategory = "state"      // State conflict (locks, concurrent writers)
	ErrCatRoute      ErrorCategory = "route"      // Out-of-order invocation
	ErrCatNotFound   ErrorCategory = "not_found"  // Resource not found
	ErrCatGit        ErrorCategory = "git"        // Repository probe or checkpoint failure
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the state engine.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns a stored detail as a string, or "" when absent.
func (e *DomainError) Detail(key string) string {
	if e.Details == nil {
		return ""
	}
	if v, ok := e.Details[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// ErrSchema creates a schema error. Schema errors are fatal: the root
// document could not be recovered by defaulting.
func ErrSchema(message string) *DomainError {
	return &DomainError{
		Category: ErrCatSchema,
		Code:     CodeSchemaError,
		Message:  message,
	}
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatState,
		Code:     code,
		Message:  message,
	}
}

// ErrItemNotFound creates an error for a status-set on a nonexistent id.
func ErrItemNotFound(id string) *DomainError {
	return (&DomainError{
		Category: ErrCatNotFound,
		Code:     CodeItemNotFound,
		Message:  fmt.Sprintf("workflow item not found: %s", id),
	}).WithDetail("item_id", id)
}

// ErrRouteMismatch creates the protocol-enforcement error raised when a
// caller requests a skill other than the resolved route.
func ErrRouteMismatch(expected, requested, nextItemTitle string) *DomainError {
	return (&DomainError{
		Category: ErrCatRoute,
		Code:     CodeRouteMismatch,
		Message: fmt.Sprintf("workflow route mismatch: expected %q, requested %q (next item: %s)",
			expected, requested, nextItemTitle),
	}).
		WithDetail("expected", expected).
		WithDetail("requested", requested).
		WithDetail("next_item_title", nextItemTitle)
}

// ErrWorkflowComplete signals a route assertion against a finished workflow.
func ErrWorkflowComplete() *DomainError {
	return &DomainError{
		Category: ErrCatRoute,
		Code:     CodeWorkflowComplete,
		Message:  "all tracked workflow items are complete",
	}
}

// ErrRepoProbe creates a repository probe error.
func ErrRepoProbe(message string) *DomainError {
	return &DomainError{
		Category: ErrCatGit,
		Code:     CodeRepoProbeFailed,
		Message:  message,
	}
}

// ErrCheckpoint creates a checkpoint commit/push error for a specific batch.
func ErrCheckpoint(batchIndex int, message string) *DomainError {
	return (&DomainError{
		Category: ErrCatGit,
		Code:     CodeCheckpointFailed,
		Message:  message,
	}).WithDetail("batch_index", batchIndex)
}

// ErrStagedChanges aborts a checkpoint when the index already holds staged
// files. A checkpoint commit must contain its own batch and nothing else.
func ErrStagedChanges(count int) *DomainError {
	return (&DomainError{
		Category: ErrCatGit,
		Code:     CodeStagedChanges,
		Message:  fmt.Sprintf("%d file(s) already staged; commit or unstage them first", count),
	}).WithDetail("staged_count", count)
}

// ErrRootNotFound signals that no project marker exists and none was given.
func ErrRootNotFound(path string) *DomainError {
	return (&DomainError{
		Category: ErrCatNotFound,
		Code:     CodeRootNotFound,
		Message:  fmt.Sprintf("no cadence project root found: %s", path),
	}).WithDetail("path", path)
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCode checks if an error carries a specific domain code.
func IsCode(err error, code string) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Code == code
	}
	return false
}

// ErrorToken renders the single-line machine-readable token a CLI operation
// must emit on failure. Unknown errors fall through to their plain text.
func ErrorToken(err error) string {
	var domErr *DomainError
	if !errors.As(err, &domErr) {
		return err.Error()
	}
	switch domErr.Code {
	case CodeRouteMismatch:
		return fmt.Sprintf("RouteMismatch:%s:%s", domErr.Detail("expected"), domErr.Detail("requested"))
	case CodeItemNotFound:
		return fmt.Sprintf("UnknownItemId:%s", domErr.Detail("item_id"))
	case CodeSchemaError:
		return fmt.Sprintf("SchemaError:%s", domErr.Message)
	case CodeRootNotFound:
		return "RootNotFound"
	case CodeRepoProbeFailed:
		return fmt.Sprintf("RepoProbeError:%s", domErr.Message)
	case CodeCheckpointFailed:
		return fmt.Sprintf("GitCheckpointError:%s:%s", domErr.Detail("batch_index"), domErr.Message)
	case CodeWorkflowComplete:
		return "WorkflowAlreadyComplete"
	case CodeStagedChanges:
		return "STAGED_CHANGES_PRESENT"
	default:
		return domErr.Error()
	}
}

// Predefined error codes
const (
	CodeSchemaError       = "SCHEMA_ERROR"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeRouteMismatch     = "ROUTE_MISMATCH"
	CodeWorkflowComplete  = "WORKFLOW_COMPLETE"
	CodeRepoProbeFailed   = "REPO_PROBE_FAILED"
	CodeCheckpointFailed  = "CHECKPOINT_FAILED"
	CodeStagedChanges     = "STAGED_CHANGES_PRESENT"
	CodeRootNotFound      = "ROOT_NOT_FOUND"
	CodeLockAcquireFailed = "LOCK_ACQUIRE_FAILED"
	CodeLockReleaseFailed = "LOCK_RELEASE_FAILED"

	// Validation error codes
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeInvalidStatusTarget = "INVALID_STATUS_TARGET"
	CodeDuplicateItemID     = "DUPLICATE_ITEM_ID"
)
