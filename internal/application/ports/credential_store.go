package ports

// CredentialStore hands out the bearer credential attached to every service
// request. The engine only reads from it; a 401 from any service triggers
// Invalidate so the hosting application can force re-authentication.
type CredentialStore interface {
	Token() (string, error)
	Invalidate()
}
