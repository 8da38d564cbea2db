// Package providers groups the concrete LLM backends.
//
// Each sub-package implements [github.com/germanamz/modai/pkg/modeladapter.Caller]
// by embedding [github.com/germanamz/modai/pkg/modeladapter.ModelAdapter]:
//   - [github.com/germanamz/modai/pkg/providers/openai]: OpenAI chat completions
//   - [github.com/germanamz/modai/pkg/providers/gemini]: Google Generative Language generateContent
//   - [github.com/germanamz/modai/pkg/providers/local]: OpenAI-compatible local servers such as Ollama
//
// Mapping a model identifier to one of these lives in the engine package.
package providers
