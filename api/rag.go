package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/Sereen-Kh/ai-deployment-platform/rag"
	"github.com/pkg/errors"
)

// CreateCollection creates a named vector collection.
func (c *Client) CreateCollection(ctx context.Context, req rag.CreateCollectionRequest) (*rag.Collection, error) {
	var out rag.Collection
	if err := c.post(ctx, "/rag/collections", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCollections returns all of the caller's collections.
func (c *Client) ListCollections(ctx context.Context) (*rag.CollectionList, error) {
	var out rag.CollectionList
	if err := c.get(ctx, "/rag/collections", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollection removes a collection and its indexed documents.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.delete(ctx, "/rag/collections/"+url.PathEscape(name), nil)
}

// UploadDocument uploads a document into a collection for indexing. The
// payload is buffered before sending so the request stays replayable if the
// first attempt hits an expired access token.
func (c *Client) UploadDocument(ctx context.Context, collectionName, filename string, r io.Reader) (*rag.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("collection_name", collectionName); err != nil {
		return nil, errors.Wrap(err, "[Client.UploadDocument] writing collection field")
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.UploadDocument] creating file part")
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, errors.Wrapf(err, "[Client.UploadDocument] reading %s", filename)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "[Client.UploadDocument] finalising multipart body")
	}

	var out rag.Document
	if err := c.postRaw(ctx, "/rag/documents", w.FormDataContentType(), buf.Bytes(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocumentsOptions filters and pages the documents listing.
type ListDocumentsOptions struct {
	CollectionName string
	Page           int
	PageSize       int
}

// ListDocuments returns a page of uploaded documents.
func (c *Client) ListDocuments(ctx context.Context, opts *ListDocumentsOptions) (*rag.DocumentList, error) {
	query := url.Values{}
	if opts != nil {
		if opts.CollectionName != "" {
			query.Set("collection_name", opts.CollectionName)
		}
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	var out rag.DocumentList
	if err := c.get(ctx, "/rag/documents", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument returns a single document with its processing state.
func (c *Client) GetDocument(ctx context.Context, id string) (*rag.Document, error) {
	var out rag.Document
	if err := c.get(ctx, "/rag/documents/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes a document and its chunks from the index.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.delete(ctx, "/rag/documents/"+id, nil)
}

// QueryRAG asks a question against a collection and returns a generated
// answer with its supporting passages.
func (c *Client) QueryRAG(ctx context.Context, q rag.Query) (*rag.Response, error) {
	var out rag.Response
	if err := c.post(ctx, "/rag/query", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SemanticSearch runs a pure vector search with no answer generation.
func (c *Client) SemanticSearch(ctx context.Context, req rag.SearchRequest) (*rag.SearchResult, error) {
	var out rag.SearchResult
	if err := c.post(ctx, "/rag/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
