package llm

import "errors"

var (
	// ErrUnavailable indicates the AI gateway is unreachable.
	ErrUnavailable = errors.New("ai gateway unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrGateway indicates the gateway rejected a single attempt.
	ErrGateway = errors.New("ai gateway error")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrDisabled is returned by the client used when the LLM is switched off.
	ErrDisabled = errors.New("llm is disabled")
)
