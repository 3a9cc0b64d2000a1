// Package client talks to the cpguide backend and bootstraps local storage.
//
// # Overview
//
//  1. Client is the transport-agnostic contract for the three backend calls:
//     Login, Signup and Progress.
//  2. HTTPClient implements it over JSON/HTTP. It caches the bearer header,
//     tags every request with X-Request-ID and clears the stored token when
//     the backend answers 401.
//  3. InitDatabase / RunMigrations open the local SQLite database and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Transport failures are *NetworkError (errors.Is(err, ErrUnavailable)).
// Non-2xx answers are *StatusError; Login and Signup wrap them into *AuthError
// and *SignupError so callers can read the backend's error body directly.
// Unexpected response shapes are *MalformedResponseError
// (errors.Is(err, ErrMalformedResponse)).
package client
