package playground

// Message is one turn of a playground conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the body for both the HTTP chat call and the first frame of
// a websocket streaming session.
type ChatRequest struct {
	Messages     []Message `json:"messages"`
	Model        string    `json:"model,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
	MaxTokens    int       `json:"max_tokens,omitempty"`
	Stream       bool      `json:"stream,omitempty"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
}

// ChatResponse is the non-streaming completion.
type ChatResponse struct {
	Content    string  `json:"content"`
	Model      string  `json:"model"`
	Provider   string  `json:"provider"`
	TokensUsed int     `json:"tokens_used,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
	LatencyMS  int     `json:"latency_ms,omitempty"`
}

// Stream event types sent by the websocket chat endpoint.
const (
	EventChunk    = "chunk"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamEvent is one frame of a streaming chat session. A "chunk" carries an
// incremental Content delta; "complete" carries the full response and closes
// the turn; "error" terminates the session.
type StreamEvent struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Done      bool   `json:"done,omitempty"`
	LatencyMS int    `json:"latency_ms,omitempty"`
	Model     string `json:"model,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ModelInfo describes one selectable model.
type ModelInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Context int    `json:"context"`
}

// ProviderModels groups a provider's available models.
type ProviderModels struct {
	Provider string      `json:"provider"`
	Models   []ModelInfo `json:"models"`
}

// ModelCatalog is the available-models response.
type ModelCatalog struct {
	Models []ProviderModels `json:"models"`
}

// Preset is a reusable prompt template.
type Preset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SystemPrompt string  `json:"system_prompt"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
}

// PresetList is the presets response.
type PresetList struct {
	Presets []Preset `json:"presets"`
}
