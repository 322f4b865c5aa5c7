package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                       = errors.New("not found")
	ErrBadRequest                     = errors.New("bad request")
	ErrEmbeddingUnavailable           = errors.New("embedding unavailable")
	ErrStorage                        = errors.New("storage error")
	ErrRecommendationGenerationFailed = errors.New("recommendation generation failed")
	ErrModelUnreachable               = errors.New("model unreachable")
	ErrDimensionMismatch              = errors.New("embedding dimension mismatch")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

// causeError is shared by the errors that wrap an underlying failure. It
// unwraps to both its sentinel and the cause.
type causeError struct {
	sentinel error
	op       string
	cause    error
}

func (e *causeError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.sentinel, e.op)
	}
	return fmt.Sprintf("%s: %s: %s", e.sentinel, e.op, e.cause)
}

func (e *causeError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.sentinel}
	}
	return []error{e.sentinel, e.cause}
}

type EmbeddingUnavailableError struct{ causeError }

func NewEmbeddingUnavailableError(op string, cause error) error {
	return &EmbeddingUnavailableError{causeError{ErrEmbeddingUnavailable, op, cause}}
}

type StorageError struct{ causeError }

func NewStorageError(op string, cause error) error {
	return &StorageError{causeError{ErrStorage, op, cause}}
}

type RecommendationGenerationFailedError struct{ causeError }

func NewRecommendationGenerationFailedError(op string, cause error) error {
	return &RecommendationGenerationFailedError{
		causeError{ErrRecommendationGenerationFailed, op, cause},
	}
}

type ModelUnreachableError struct{ causeError }

func NewModelUnreachableError(op string, cause error) error {
	return &ModelUnreachableError{causeError{ErrModelUnreachable, op, cause}}
}

type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: store holds %d dimensions, document has %d",
		ErrDimensionMismatch, e.Expected, e.Got)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}
