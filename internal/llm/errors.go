package llm

import "errors"

var (
	// ErrOllamaUnavailable is returned when the local Ollama server cannot
	// be reached. Mentor services fall back to canned replies on this error.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout is returned when a generation call exceeds the configured
	// per-task timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput is returned when the model's response cannot be
	// parsed into the expected structured form.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted is returned once every retry attempt has failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
