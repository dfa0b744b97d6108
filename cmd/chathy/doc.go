// Command chathy runs the group conversation service: an HTTP API where a
// user message posted into a group of specialist agents produces one or
// more agent replies, selected by mention or delegated arbitration.
package main
