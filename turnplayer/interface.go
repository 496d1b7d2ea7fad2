package turnplayer

import (
	"github.com/domino14/connect6/move"
)

// TurnPlayer is what a host needs from a Connect6 player.
type TurnPlayer interface {
	// Name is a stable identifier for the strategy.
	Name() string
	// NewGame resets the player for a fresh game.
	NewGame()
	// NextMove is told the opponent's last move (nil on the first turn of
	// the game) and returns the player's own. An error means the host sent
	// an illegal move or the board has no empty cells.
	NextMove(opp *move.Move) (*move.Move, error)
}
