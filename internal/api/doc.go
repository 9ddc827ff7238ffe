// Package api provides HTTP client functionality for communicating with the
// VesselFinder API. It validates request parameters, authenticates every
// request with the userkey parameter, and maps responses to results or
// typed errors.
//
// # Dispatch
//
// Every resource call goes through [Client.Dispatch]:
//
//  1. nil parameters are dropped, userkey (and errormode when enabled) are added
//  2. parameters are validated; the first failure is returned as an
//     invalid-arguments error and nothing is sent
//  3. imo and mmsi lists are joined with commas
//  4. exactly one request is sent: GET and DELETE carry the parameters in
//     the query string, POST and PUT in a form-encoded body
//  5. X-API-* response headers are collected into [Info]
//  6. a 409 status or an "error" entry in [Info] becomes a request error
//  7. an empty body yields {"success": fallback}, format=xml yields the raw
//     text, anything else is decoded as JSON
//
// There are no retries. Transport failures are returned as
// *apierrors.NetworkError.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. It keeps no state between
// calls; response metadata is returned in each [Result].
package api
