package models

import (
	"errors"
	"fmt"
)

// Result is the stored outcome code of a game.
type Result int16

const (
	ResultBlackWon Result = 0
	ResultWhiteWon Result = 1
	ResultDraw     Result = 2
)

var ErrUnknownResult = errors.New("unknown result")

var resultTokens = map[string]Result{
	"0-1":     ResultBlackWon,
	"1-0":     ResultWhiteWon,
	"1/2-1/2": ResultDraw,
}

// ParseResult maps a PGN result token onto its stored code.
func ParseResult(token string) (Result, error) {
	r, ok := resultTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResult, token)
	}
	return r, nil
}

func (r Result) String() string {
	switch r {
	case ResultBlackWon:
		return "0-1"
	case ResultWhiteWon:
		return "1-0"
	case ResultDraw:
		return "1/2-1/2"
	}
	return "*"
}
