package game

// GameState is the top-level phase of a session.
type GameState int

const (
	StateMenu     GameState = iota // Title screen
	StatePlaying                   // Simulation running
	StatePaused                    // Simulation frozen, resumable
	StateGameOver                  // Lives exhausted, waiting for a new round
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAMEOVER"
	default:
		return "UNKNOWN"
	}
}
