// Package group implements group conversation orchestration: deciding which
// agents respond to an inbound message, composing per-agent prompts, calling
// the completion provider, and merging replies into a bounded history.
//
// The pipeline for one turn is strictly sequential. Responders are invoked
// one at a time in selection order, which keeps message ordering
// deterministic at the cost of latency proportional to responder count.
package group
