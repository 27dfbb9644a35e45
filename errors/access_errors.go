// api/errors/access_errors.go
package errors

import "errors"

var (
	// ErrPermissionDenied is surfaced as a generic not-authorized outcome with
	// no detail on which rule failed.
	ErrPermissionDenied = errors.New("you are not authorized to perform this action")

	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrNotWorkspaceMember = errors.New("principal is not a member of the workspace")

	ErrInternalServer = errors.New("internal server error")
)
