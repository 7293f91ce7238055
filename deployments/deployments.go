package deployments

import "time"

// Status is the deployment lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusBuilding  Status = "building"
	StatusDeploying Status = "deploying"
	StatusRunning   Status = "running"
	StatusStopped   Status = "stopped"
	StatusFailed    Status = "failed"
	StatusDeleted   Status = "deleted"
)

// Type classifies what a deployment serves.
type Type string

const (
	TypeRAG        Type = "rag"
	TypeAgent      Type = "agent"
	TypeChat       Type = "chat"
	TypeCompletion Type = "completion"
	TypeCustom     Type = "custom"
)

// ModelConfig selects and tunes the model behind a deployment.
type ModelConfig struct {
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// RAGConfig configures retrieval for RAG deployments.
type RAGConfig struct {
	CollectionName string  `json:"collection_name"`
	ChunkSize      int     `json:"chunk_size,omitempty"`
	ChunkOverlap   int     `json:"chunk_overlap,omitempty"`
	TopK           int     `json:"top_k,omitempty"`
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
	EmbeddingModel string  `json:"embedding_model,omitempty"`
}

// Config is the full deployment configuration document.
type Config struct {
	Model                ModelConfig       `json:"model"`
	RAG                  *RAGConfig        `json:"rag,omitempty"`
	EnvironmentVariables map[string]string `json:"environment_variables,omitempty"`
	EnableStreaming      bool              `json:"enable_streaming,omitempty"`
	EnableCaching        bool              `json:"enable_caching,omitempty"`
	CacheTTL             int               `json:"cache_ttl,omitempty"`
}

// Deployment is a deployed model endpoint as returned by the API.
type Deployment struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	DeploymentType Type                   `json:"deployment_type"`
	Status         Status                 `json:"status"`
	Config         map[string]interface{} `json:"config,omitempty"`
	Replicas       int                    `json:"replicas"`
	EndpointURL    string                 `json:"endpoint_url,omitempty"`
	Version        int                    `json:"version"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	DeployedAt     *time.Time             `json:"deployed_at,omitempty"`
}

// CreateRequest is the body for creating a deployment.
type CreateRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	DeploymentType Type    `json:"deployment_type,omitempty"`
	Config         *Config `json:"config,omitempty"`
	Replicas       int     `json:"replicas,omitempty"`
	CPULimit       string  `json:"cpu_limit,omitempty"`
	MemoryLimit    string  `json:"memory_limit,omitempty"`
}

// UpdateRequest is the PATCH body; nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Config      *Config `json:"config,omitempty"`
	Replicas    *int    `json:"replicas,omitempty"`
	CPULimit    *string `json:"cpu_limit,omitempty"`
	MemoryLimit *string `json:"memory_limit,omitempty"`
}

// List is a page of deployments.
type List struct {
	Items    []Deployment `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// Stats summarises traffic through a deployment over a period.
type Stats struct {
	DeploymentID       string  `json:"deployment_id"`
	TotalRequests      int     `json:"total_requests"`
	SuccessfulRequests int     `json:"successful_requests"`
	FailedRequests     int     `json:"failed_requests"`
	AvgLatencyMS       float64 `json:"avg_latency_ms"`
	TotalTokens        int     `json:"total_tokens"`
	EstimatedCost      float64 `json:"estimated_cost"`
	Period             string  `json:"period"`
}
