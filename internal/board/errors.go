package board

import "errors"

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrMissingKing   = errors.New("each side needs exactly one king")
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
)
