// Package request is the dispatch core shared by every endpoint of the client.
//
// # Request Config
//
// [BuildConfig] turns a token, a [Verb] and an optional serialized body into a [Descriptor]. It always sets
// "Authorization: Bearer <token>" and adds "Content-Type: application/json" only when a body is present.
//
// # Dispatcher
//
// [Dispatcher] owns the credential (an [oauth2.Token]) and an optional refresh endpoint. [Dispatcher.Dispatch]
// builds a descriptor, performs one HTTP call against the base URL, decodes the JSON body and rewrites its keys
// to camelCase before returning it.
//
// POST and PUT bodies are serialized to JSON; GET and DELETE calls never carry a body, even when one is passed.
//
// # Results
//
// Every call returns a [Result]: either a value or an [ErrorEnvelope], never a Go error. Failures while building,
// sending or decoding a call produce {code: 500, reason: "Error", extra: <error>}. Non-2xx responses produce an
// envelope with the HTTP status as code and the API's error message as reason. Empty bodies (204) are successes
// with a nil value.
//
// [Convert] re-decodes the normalized tree into a typed model; [Do] combines both steps.
//
// # Credential Refresh
//
// [Dispatcher.GetNewToken] calls GET <refresh endpoint><refresh token> and, on a 200 response, replaces the
// access token with the "access_token" field of the body. Other statuses leave the token unchanged without
// an error.
package request
