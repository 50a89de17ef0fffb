// Package identity answers who is calling. Every service operation asks it
// first and refuses to touch the store for an unauthenticated caller.
package identity

import "context"

// Identity reports the caller of an operation.
type Identity interface {
	// IsAuthenticated reports whether the caller has an authenticated session.
	IsAuthenticated(ctx context.Context) bool

	// CurrentUserID returns the stable id of the caller. It is only
	// meaningful when IsAuthenticated returns true.
	CurrentUserID(ctx context.Context) string
}

// Static is an Identity that always reports the same user.
// An empty Static is unauthenticated.
type Static string

// IsAuthenticated reports whether the user id is non-empty.
func (s Static) IsAuthenticated(ctx context.Context) bool { return s != "" }

// CurrentUserID returns the user id.
func (s Static) CurrentUserID(ctx context.Context) string { return string(s) }

// Anonymous is an Identity with no authenticated session.
type Anonymous struct{}

// IsAuthenticated always returns false.
func (Anonymous) IsAuthenticated(ctx context.Context) bool { return false }

// CurrentUserID always returns "".
func (Anonymous) CurrentUserID(ctx context.Context) string { return "" }

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying an authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// FromContext is an Identity backed by the request context, where the HTTP
// auth middleware places the user id of a validated access token.
type FromContext struct{}

// IsAuthenticated reports whether ctx carries a user id.
func (FromContext) IsAuthenticated(ctx context.Context) bool {
	_, ok := UserIDFromContext(ctx)
	return ok
}

// CurrentUserID returns the user id carried by ctx, or "".
func (FromContext) CurrentUserID(ctx context.Context) string {
	userID, _ := UserIDFromContext(ctx)
	return userID
}
