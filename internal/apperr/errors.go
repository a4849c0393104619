package apperr

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrVaultNotConfigured     = errors.New("vault path is not configured")
	ErrConversationNotStarted = errors.New("conversation not started")
	ErrConversationEnded      = errors.New("conversation already ended")
)
