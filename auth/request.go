// api/auth/request.go
package auth

// LoginRequest is the credential payload of a password-form login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestMeta carries the transport-level facts of the attempt used for
// throttling and the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
	Referrer  string
}
