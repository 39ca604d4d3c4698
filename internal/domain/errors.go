package domain

import "errors"

var (
	// ErrSearchProviderError signals a local/blog search provider failure.
	ErrSearchProviderError = errors.New("search provider error")
	// ErrChatProviderError signals a chat model provider failure.
	ErrChatProviderError = errors.New("chat provider error")
	// ErrEmptyCompletion signals a chat completion with no choices.
	ErrEmptyCompletion = errors.New("empty completion")
	// ErrInvalidLanguage signals an unsupported display language code.
	ErrInvalidLanguage = errors.New("invalid language")
)
