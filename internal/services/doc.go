// Package services defines the [Parser] and [CRM] interfaces for the remote resume
// parsing service and the downstream CRM, and implements both over HTTP.
//
// # Parser Interface
//
// The parser service ingests resume files (one multipart request per file) and
// exposes keyword search over the candidates it has parsed. [ParserService]
// implements it against the JSON API described in the service contract.
//
// # CRM Interface
//
// The CRM owns named contact lists. [CRMService] implements catalog retrieval,
// list creation, and contact attachment. Authentication is a static bearer
// token supplied through [oauth2.StaticTokenSource]; the oauth2 transport adds
// the Authorization header on every request.
//
// # Error Handling
//
// Services convert failures into typed errors from the shared package:
//   - [shared.ErrUnreachable] : connection could not be established, message names the endpoint
//   - [shared.ErrTimeout] : bounded wait expired with no response
//   - [shared.ErrServerRejected] : non-success status, carries the server's detail message when present
//
// Response decoding treats every field as optionally absent; display fallbacks
// are applied by callers via [models.Fallback], never by the clients.
package services
