package generation

import "context"

// Options tune one model call.
type Options struct {
	JSON            bool
	Temperature     float32
	MaxOutputTokens int32
}

var (
	jsonOptions = Options{JSON: true, Temperature: 0.85, MaxOutputTokens: 8192}
	textOptions = Options{Temperature: 0.8, MaxOutputTokens: 200}
)

// Model is a text-generation backend.
type Model interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
