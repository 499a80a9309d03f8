package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error tipikal dari service layer. Controller memetakan ke kode HTTP
// lewat FromServiceError, jadi service tidak perlu tahu soal fiber.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ExternalError membungkus kegagalan kolaborator eksternal
// (renderer, blob store) menjadi satu error dengan konteks operasi.
type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }

// NewExternalError helper pembungkus.
func NewExternalError(op string, err error) error {
	return &ExternalError{Op: op, Err: err}
}

// FromServiceError memetakan error service ke response JSON standar.
func FromServiceError(c *fiber.Ctx, err error) error {
	var extErr *ExternalError
	switch {
	case errors.Is(err, ErrNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrPreconditionFailed):
		return Error(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &extErr):
		log.Printf("[ERROR] external collaborator: %v", extErr)
		return Error(c, fiber.StatusBadGateway, extErr.Error())
	default:
		log.Printf("[ERROR] internal: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
