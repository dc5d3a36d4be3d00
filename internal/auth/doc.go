// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

// Package auth verifies bearer identities.
//
// Tokens are HS256 JWTs minted by the account service that fronts this API;
// the user id is the "sub" claim. This package never issues tokens to end
// users and does not handle login.
//
// Identifier.Middleware is optional by nature: a request without a token,
// or with a bad one, continues anonymously. Handlers that need an identity
// (stored preferences) call SubjectFromContext and answer 401 themselves.
package auth
