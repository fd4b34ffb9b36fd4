package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// Storage keys shared by every process using the same store.
const (
	KeyUploadedDocs   = "rag_uploaded_docs"
	KeyChatHistory    = "rag_chat_history"
	KeySelectedModel  = "rag_selected_model"
	KeySystemPrompt   = "rag_system_prompt"
	KeyAccountProfile = "rag_account_profile"
)

// loadJSON decodes the value under key into v.
// A missing key leaves v untouched and reports found=false. A corrupt value
// is logged and treated as missing. A storage failure is logged and
// returned wrapping domain.ErrStorageUnavailable.
func loadJSON(ctx context.Context, storage driven.Storage, key string, v any) (found bool, err error) {
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		logger.Warn("storage unavailable reading %s: %v", key, err)
		return false, fmt.Errorf("%w: reading %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn("ignoring corrupt value for %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

// saveJSON encodes v and writes it under key.
func saveJSON(ctx context.Context, storage driven.Storage, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := storage.Set(ctx, key, raw); err != nil {
		logger.Warn("storage unavailable writing %s, change kept in memory: %v", key, err)
		return fmt.Errorf("%w: writing %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
