// Package modeladapter defines the contract shared by all LLM backends.
//
// It contains:
//   - [Caller] interface: one stateless prompt in, one trimmed text out
//   - [ModelAdapter] embeddable base struct with HTTP helpers, auth and custom headers
//   - [ProviderError], the single failure type every backend reports
//
// This package contains no provider-specific code. Concrete adapters live in
// the providers/ sub-packages and embed ModelAdapter.
package modeladapter
