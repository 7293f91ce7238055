package rag

import "time"

// DocumentStatus is the ingestion pipeline state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// Collection is a named vector collection.
type Collection struct {
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DocumentCount  int       `json:"document_count"`
	ChunkCount     int       `json:"chunk_count"`
	EmbeddingModel string    `json:"embedding_model,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CollectionList is the collections listing response.
type CollectionList struct {
	Items []Collection `json:"items"`
	Total int          `json:"total"`
}

// CreateCollectionRequest is the body for creating a collection.
type CreateCollectionRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	DistanceMetric string `json:"distance_metric,omitempty"`
}

// Document is an uploaded source document and its processing state.
type Document struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	CollectionName string         `json:"collection_name"`
	FileType       string         `json:"file_type"`
	FileSize       int64          `json:"file_size"`
	Status         DocumentStatus `json:"status"`
	ChunkCount     int            `json:"chunk_count"`
	TokenCount     int            `json:"token_count"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	ProcessedAt    *time.Time     `json:"processed_at,omitempty"`
}

// DocumentList is a page of documents.
type DocumentList struct {
	Items    []Document `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Query is a retrieval-augmented query request.
type Query struct {
	Query          string                 `json:"query"`
	CollectionName string                 `json:"collection_name"`
	TopK           int                    `json:"top_k,omitempty"`
	ScoreThreshold float64                `json:"score_threshold,omitempty"`
	Filters        map[string]interface{} `json:"filters,omitempty"`

	// LLM settings for answer generation
	Model        string  `json:"model,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// RetrievedChunk is one ranked passage returned for a query.
type RetrievedChunk struct {
	DocumentID   string                 `json:"document_id"`
	DocumentName string                 `json:"document_name"`
	Content      string                 `json:"content"`
	Score        float64                `json:"score"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	ChunkIndex   int                    `json:"chunk_index"`
}

// Response is a generated answer with its supporting passages.
type Response struct {
	Answer string           `json:"answer"`
	Query  string           `json:"query"`
	Chunks []RetrievedChunk `json:"chunks"`

	ModelUsed        string  `json:"model_used"`
	TotalTokens      int     `json:"total_tokens"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	LatencyMS        float64 `json:"latency_ms"`
	Cached           bool    `json:"cached,omitempty"`
}

// SearchRequest is a pure semantic search (no answer generation).
type SearchRequest struct {
	Query          string  `json:"query"`
	CollectionName string  `json:"collection_name"`
	TopK           int     `json:"top_k,omitempty"`
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
}

// SearchResult is the semantic search response.
type SearchResult struct {
	Query  string           `json:"query"`
	Chunks []RetrievedChunk `json:"chunks"`
}
