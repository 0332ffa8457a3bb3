package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// CallMeta holds operational metadata for a single model call.
type CallMeta struct {
	Caller  string
	Usage   TokenUsage
	Latency time.Duration
}
