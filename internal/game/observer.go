package game

import "github.com/tomz197/rockfall/internal/object"

//go:generate go tool mockgen -destination=./mocks/observer_mock.go -package=mocks . Observer

// Observer is notified of round events. Callbacks run synchronously inside
// the tick and must not block.
type Observer interface {
	RoundStarted()
	ObstacleDestroyed(class object.SizeClass)
	CraftLost(livesLeft int)
	LevelCleared(level int)
	RoundOver(score int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) RoundStarted()                      {}
func (NopObserver) ObstacleDestroyed(object.SizeClass) {}
func (NopObserver) CraftLost(int)                      {}
func (NopObserver) LevelCleared(int)                   {}
func (NopObserver) RoundOver(int)                      {}
