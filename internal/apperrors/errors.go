package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrOAuthExchange indicates the provider rejected an authorization code exchange.
var ErrOAuthExchange = errors.New("oauth code exchange rejected")

// ErrOAuthRefresh indicates the provider rejected a refresh token.
// This is terminal for the current operation and must surface to the caller.
var ErrOAuthRefresh = errors.New("oauth token refresh rejected")

// ErrProviderAuth indicates the provider rejected the current access token
// on an API call. Callers may refresh once and retry the call exactly once.
var ErrProviderAuth = errors.New("provider rejected access token")

// ErrProviderAPI indicates a non-auth failure from a provider API call.
var ErrProviderAPI = errors.New("provider api failure")

// ErrPersistence indicates a store write failure.
var ErrPersistence = errors.New("persistence failure")

// ErrSyncIncomplete indicates a ledger walk aborted before exhaustion.
// No partial result is persisted; the prior complete set remains current.
var ErrSyncIncomplete = errors.New("ledger sync incomplete")
