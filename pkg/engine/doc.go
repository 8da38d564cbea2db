// Package engine is the composition root of modai. It loads configuration,
// resolves a model identifier to a provider, and runs transformations against
// a host editor through a frontend-agnostic API.
//
// Hosts register the values returned by [Engine.Commands] as their commands.
// Each invocation captures the selection synchronously, asks the resolved
// provider for a rewrite, and hands the result to the host's [Frontend] for
// review. Activity is published on an [EventBus] and logged with log/slog.
package engine
