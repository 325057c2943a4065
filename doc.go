// Package auth implements credential based authentication and bearer
// token authorization: verifying an email/password pair against a user
// store, issuing a signed, time limited access token, and validating
// that token on protected requests.
//
// Strategies:
//   - UserProvider verifies email/password pairs. A missing user and a
//     wrong password produce the identical rejection so callers cannot
//     enumerate registered emails.
//   - BearerProvider validates access tokens (HMAC-SHA256, fixed claim
//     schema) and resolves the claim subject back to a stored user.
//
// Auther composes both behind Login, Register, and Authorize. Outcomes
// are structured errors: auth and conflict categories are client
// rejections (401/409 class), everything else is an operational fault
// (500 class). IsRejection and StatusForError encode that mapping for
// HTTP adapters; middleware/bearerware applies it to Fiber requests.
//
// Tokens are stateless. There is no revocation list and no refresh
// flow; expiry is enforced only at verification time, and rotating the
// signing secret invalidates every outstanding token.
package auth
