// Package auth is the FreshCart authentication and authorization core:
// stateless JWT issuance and verification, the per-request bearer pipeline,
// the account lockout state machine, and the role-based route policy.
//
// Tokens:
//   - TokenService signs HS256 tokens carrying sub/iat/exp/iss plus the
//     optional type, userId, and role claims. Verification is a pure function
//     of the token text and the signing key; there is no revocation list, so
//     access tokens stay short-lived and the refresh flow hands out new ones.
//
// Accounts:
//   - User records carry an AccountStatus plus the lockout bookkeeping
//     fields. LockoutMachine owns the only transitions into and out of
//     LOCKED; administrative statuses are set externally and never touched.
//   - The usability predicates (IsAccountNonLocked, IsCredentialsNonExpired,
//     IsEnabled, IsUsable) are plain computed checks over the record, shared
//     by the login flow and the request pipeline.
//
// Requests:
//   - middleware/bearer authenticates each request and applies the Policy
//     rule table. Token failures degrade to an unauthenticated request; the
//     policy's opaque denial is the only externally visible failure.
package auth
