// Package search implements the client-side search session: the ordered
// tag set of keywords, the request/response state machine with stale
// response discarding, the selection of result identifiers targeted for
// CRM sync, and excerpt highlighting.
//
// The package performs no network I/O itself. Callers take a snapshot via
// [Orchestrator.Begin], run the request through the parser service, and
// hand the outcome back through [Orchestrator.Resolve] together with the
// token Begin issued. Resolve discards any outcome whose token is no longer
// current, so the displayed results always reflect the most recently
// committed query regardless of response arrival order.
package search
