package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session to continue; a new session is started when empty"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	SessionID string         `json:"session_id"`
	Answer    string         `json:"answer"`
	Sources   []SourceOutput `json:"sources"`
}

// SourceOutput is a document that contributed to an answer.
type SourceOutput struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
}

// ListDocumentsInput is the (empty) input schema for list_documents.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for list_documents.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput describes one uploaded document.
type DocumentOutput struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ListSessionsInput is the (empty) input schema for list_sessions.
type ListSessionsInput struct{}

// ListSessionsOutput is the output schema for list_sessions.
type ListSessionsOutput struct {
	History []SessionOutput `json:"history"`
	Count   int             `json:"count"`
}

// SessionOutput summarises one saved session.
type SessionOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Turns     int       `json:"turns"`
}

// errServiceUnavailable is returned by tools whose port is not configured.
var errServiceUnavailable = errors.New("service not configured")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the uploaded documents and record it in a chat session",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List uploaded documents",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List saved chat sessions",
	}, s.handleListSessions)
}

// handleAsk handles the ask tool invocation. The answer is returned whole;
// closing the panel ends the stream and records the assistant turn.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	panel := s.ports.Chat.OpenPanel(input.SessionID)
	defer panel.Close()

	reply, err := panel.Send(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		SessionID: reply.SessionID,
		Answer:    reply.Text,
		Sources:   make([]SourceOutput, len(reply.Matches)),
	}
	for i, m := range reply.Matches {
		output.Sources[i] = SourceOutput{
			DocumentID: m.Document.ID,
			Name:       m.Document.Name,
			Score:      m.Score,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, errServiceUnavailable
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = documentOutput(&docs[i])
	}

	return nil, output, nil
}

// handleListSessions handles the list_sessions tool invocation.
func (s *Server) handleListSessions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSessionsInput,
) (*mcp.CallToolResult, ListSessionsOutput, error) {
	if s.ports.Session == nil {
		return nil, ListSessionsOutput{}, errServiceUnavailable
	}

	sessions, err := s.ports.Session.List(ctx)
	if err != nil {
		return nil, ListSessionsOutput{}, err
	}

	output := ListSessionsOutput{
		History: make([]SessionOutput, len(sessions)),
		Count:   len(sessions),
	}
	for i, sess := range sessions {
		output.History[i] = SessionOutput{
			ID:        sess.ID,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
			Turns:     len(sess.Turns),
		}
	}

	return nil, output, nil
}

func documentOutput(doc *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:         doc.ID,
		Name:       doc.Name,
		Extension:  string(doc.Extension),
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.UploadedAt,
	}
}
