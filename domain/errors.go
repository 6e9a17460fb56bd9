package domain

import (
	"fmt"
)

// ValidationError reports input the caller can correct and resend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError wraps a failed object storage write.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage write failed for %q: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is permanent for the given input.
type UnsupportedFormatError struct {
	ContentType string
	Message     string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unsupported format: %s", e.ContentType)
}

// ExternalServiceError carries the upstream status and body. StatusCode is 0
// when the request never got a response.
type ExternalServiceError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// PartialImportError reports how far a materialization got before an insert
// failed. With RolledBack set none of the counted rows were kept.
type PartialImportError struct {
	CategoriesInserted int
	ItemsInserted      int
	RolledBack         bool
	Err                error
}

func (e *PartialImportError) Error() string {
	state := "committed"
	if e.RolledBack {
		state = "rolled back"
	}
	return fmt.Sprintf("menu import failed after %d categories and %d items (%s): %v",
		e.CategoriesInserted, e.ItemsInserted, state, e.Err)
}

func (e *PartialImportError) Unwrap() error {
	return e.Err
}

type QuotaExceededError struct {
	Tier      string
	Resource  string
	Limit     int
	Current   int
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s tier allows %d %s, currently %d, requested %d more",
		e.Tier, e.Limit, e.Resource, e.Current, e.Requested)
}
