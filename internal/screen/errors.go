package screen

import (
	"errors"

	"github.com/kiliankoe/otiyot/internal/game"
)

// ErrorCode is the snake_case code transports send for err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrScreenNotFound):
		return "screen_not_found"
	case errors.Is(err, ErrUnknownKind):
		return "unknown_game"
	case errors.Is(err, ErrWrongKind):
		return "wrong_game"
	case errors.Is(err, game.ErrConfiguration):
		return "invalid_config"
	case errors.Is(err, game.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, game.ErrInvalidState):
		return "invalid_state"
	}
	return "internal"
}
