// Package handlers implements the HTTP request handlers for the Chathy API.
//
// The package covers three surfaces:
//
//   - GroupHandler  — group listing, posting a message into a group
//     conversation, and reading or clearing the conversation history
//   - AgentHandler  — read-only access to the agent roster
//   - HealthHandler — liveness and readiness probes with pluggable checks
//
// All handlers follow standard net/http conventions and share a uniform
// JSON response envelope (Response) with structured error information
// (ErrorInfo). WriteSuccess, WriteError and DecodeJSONBody centralize the
// envelope, the ErrorCode to HTTP status mapping, and strict request
// decoding.
package handlers
