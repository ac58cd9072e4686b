package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/rockfall/internal/game"
)

var titleArt = []string{
	` ___  ___   ___ _  _____ _   _    _    `,
	`| _ \/ _ \ / __| |/ / __/_\ | |  | |   `,
	`|   / (_) | (__| ' <| _/ _ \| |__| |__ `,
	`|_|_\\___/ \___|_|\_\_/_/ \_\____|____|`,
}

const controlsHelp = "A/D turn   W thrust   SPACE fire   S/H hyperspace   P pause   Q quit"

// drawUI draws the HUD line and the overlay for the current state.
func (s *session) drawUI(now time.Time) {
	hud := s.round.HUD()
	s.drawHUD(hud)

	if s.idle {
		s.drawIdleWarning(now)
		return
	}

	switch hud.State {
	case game.StateMenu:
		s.drawMenu(hud)
	case game.StatePaused:
		s.drawCentered(-1, "P A U S E D")
		s.drawCentered(1, "Press P to resume")
	case game.StateGameOver:
		s.drawGameOver(hud)
	}
}

// drawHUD writes the scoreboard on the terminal's first row.
func (s *session) drawHUD(hud game.HUD) {
	lives := strings.Repeat("▲ ", max(hud.Lives, 0))
	left := fmt.Sprintf("SCORE %-7d LEVEL %d", hud.Score, hud.Level)
	right := fmt.Sprintf("LIVES %s  HI %d", lives, hud.HighScore)

	s.cw.MoveCursorAbs(s.view.OffCol+1, 1)
	s.cw.WriteString(left)
	s.cw.MoveCursorAbs(max(s.view.OffCol+s.view.Cols-len([]rune(right))+1, 1), 1)
	s.cw.WriteString(right)
}

func (s *session) drawMenu(hud game.HUD) {
	top := -len(titleArt) - 1
	for i, line := range titleArt {
		s.drawCentered(top+i, line)
	}
	s.drawCentered(1, "Press ENTER to start")
	if hud.HighScore > 0 {
		s.drawCentered(3, fmt.Sprintf("High score: %d", hud.HighScore))
	}
	s.drawCentered(5, controlsHelp)
}

func (s *session) drawGameOver(hud game.HUD) {
	s.drawCentered(-2, "G A M E   O V E R")
	s.drawCentered(0, fmt.Sprintf("Score: %d   Level: %d", hud.Score, hud.Level))
	if hud.Score > 0 && hud.Score >= hud.HighScore {
		s.drawCentered(1, "New high score!")
	}
	s.drawCentered(3, "Press ENTER to play again")
}

func (s *session) drawIdleWarning(now time.Time) {
	left := s.opts.IdleTimeout - now.Sub(s.lastInput)
	s.drawCentered(-1, "Still there?")
	s.drawCentered(1, fmt.Sprintf("Disconnecting in %d seconds. Press any key to stay.", int(left.Seconds())))
}

// drawCentered writes text centered on the canvas, dy rows from its middle.
func (s *session) drawCentered(dy int, text string) {
	col := (s.view.Cols-len([]rune(text)))/2 + 1
	row := s.view.Rows/2 + dy
	s.cw.WriteAt(max(col, 1), max(row, 1), text)
}
