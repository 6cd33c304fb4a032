/*
Package authsdk provides a client for Supabase-compatible auth (GoTrue)
services.

# Overview

The package issues a fixed set of operations against one auth API surface:
signup, password sign in, token refresh, user lookup, logout, and admin user
deletion. It is not a general-purpose HTTP client; it owns no state beyond
the immutable client configuration built once up front.

Create a client with the project URL and anon key:

	client, err := authsdk.NewClient("https://your-project.supabase.co", "your-anon-key")

Admin operations additionally need a service role key, supplied through the
builder:

	admin, err := authsdk.NewBuilder().
		APIURL("https://your-project.supabase.co").
		AnonKey("your-anon-key").
		ServiceRoleKey("your-service-role-key").
		Build()

# Identifiers

Accounts are addressed by email or phone number. Every operation that takes
a credential accepts an Identifier, constructed from exactly one of the two
forms:

	user, token, err := client.Signup(ctx, authsdk.EmailIdentifier("user@example.com"), "secret-password", nil)
	tokens, err := client.SigninWithPassword(ctx, authsdk.PhoneIdentifier("+61400000000"), "secret-password")

# Operations

Signup creates an account and signs it in, returning the user and an access
token. SigninWithPassword and RefreshToken return a full TokenResponse.
GetUserByToken resolves an access token to its account via the user-info
endpoint. GetUserByID takes the other transport path, querying the auth
schema's users table directly, and returns (nil, nil) for a missing user
instead of an error. Logout revokes the session behind an access token.
SoftDeleteUser and HardDeleteUser are admin operations gated on the service
role key.

# Error Handling

Every failure matches exactly one sentinel from the taxonomy in errors.go
under errors.Is:

	_, err := client.SigninWithPassword(ctx, id, password)
	switch {
	case errors.Is(err, authsdk.ErrNotAuthorized):
		// bad credentials
	case errors.Is(err, authsdk.ErrInvalidParameters):
		// empty input, rejected before any network call
	case errors.Is(err, authsdk.ErrHTTP):
		// transport failure
	}

Local precondition failures (empty required input, missing service role
key) return immediately without a network call. Non-success statuses are
classified before the body is decoded. A payload that fails to decode on a
success status returns ErrInternal, signaling a contract mismatch with the
service rather than a caller error.

# Concurrency

The client is immutable after construction and safe for concurrent use.
Operations take a context.Context and block only at the network boundary;
there is no retry logic and no timeout policy beyond the HTTP client's, both
of which belong to the caller.
*/
package authsdk
