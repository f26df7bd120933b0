package provider

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single generation call.
type Options struct {
	// JSONResponse asks the model for structured JSON output (used for
	// flashcard generation; chat uses free text).
	JSONResponse bool
}

// Provider is the boundary to the external text-generation service. Calls
// block until the service responds; cancellation comes from ctx only.
type Provider interface {
	Generate(ctx context.Context, msgs []Message, opts Options) (string, error)
	Name() string
	ModelName() string
}
