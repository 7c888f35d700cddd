package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestKindOfSeesThroughWrapping(t *testing.T) {
	err := NotFound("order %d not found", 42)
	wrapped := fmt.Errorf("loading order: %w", err)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, fiber.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, fiber.StatusConflict, HTTPStatus(InsufficientStock("x")))
	assert.Equal(t, fiber.StatusConflict, HTTPStatus(InvalidTransition("x")))
	assert.Equal(t, fiber.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, fiber.StatusForbidden, HTTPStatus(Forbidden("x")))
	assert.Equal(t, fiber.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
