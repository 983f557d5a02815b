// Package rentals implements the listing API and its stateless token-based
// request filter.
//
// Authentication:
//   - TokenService issues HS256 tokens whose subject is the account email and
//     whose lifetime is fixed at thirty minutes from issuance. Verification is
//     purely computational; there is no session store and no revocation list.
//   - RoutePolicy is a static, ordered rule table consulted on every request.
//     The first matching rule wins and anything unmatched is protected. The
//     middleware in middleware/jwtware enforces the policy and halts every
//     failure on a protected route with the same uniform 401.
//   - A handful of open routes (the account endpoint and listing creation)
//     verify the bearer token themselves instead of relying on the filter.
//
// Persistence:
//   - Users, Rentals, and Messages are Bun repositories assembled behind a
//     RepositoryManager so handlers and command handlers share transactions.
//   - Registration runs as a command handler inside a single transaction:
//     plausibility-check the email, reject duplicates, hash, insert.
package rentals
