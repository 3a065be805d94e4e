// Package auth provides session authentication for the sflow server.
//
// # Overview
//
// This package implements the trust boundary of the REST surface: verifying
// presented credentials (passwords and the sflow machine API key), encoding
// user identity into signed, stateless session tokens, and detecting the
// first-run bootstrap state of an instance whose owner account has not been
// claimed yet.
//
// # Key Components
//
// Credential verification: one-way comparisons only
//
//	ok := auth.VerifyPassword(presented, user.PasswordHash())
//	ok := auth.VerifyAPIKey(presented, settings.SflowAPIKey())
//
// Session tokens: HMAC-signed JWTs carrying the user id and an expiry
//
//	codec := auth.NewTokenCodec(secret, users)
//	token, err := codec.Issue(user)
//	user, err := codec.Resolve(ctx, token)
//
// Bootstrap detection: a freshly installed instance has a single user row
// with neither email nor password set. Until the owner flag is flipped,
// that placeholder may be logged in without credentials so setup can
// complete.
//
//	detector := auth.NewBootstrapDetector(settings, users)
//	user, err := detector.FindOwnerlessUser(ctx)
//
// Tokens are never stored server-side; a token remains valid until its
// expiry regardless of later logins by the same user.
package auth
