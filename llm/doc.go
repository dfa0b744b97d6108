// Package llm defines the provider-neutral completion interface consumed by
// the group orchestration core. Concrete HTTP clients live under providers/.
package llm
