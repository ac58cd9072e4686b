package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestReadKeys_LettersAndArrows(t *testing.T) {
	s := newStream()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	feed(s, "w \x1b[Dh")
	k := ReadKeys(s)

	assert.True(t, k.Up)
	assert.True(t, k.Space)
	assert.True(t, k.Left)
	assert.True(t, k.Hyper)
	assert.False(t, k.Right)
	assert.False(t, k.Quit)
}

func TestReadKeys_HoldExpires(t *testing.T) {
	s := newStream()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	feed(s, "p")
	assert.True(t, ReadKeys(s).Pause)

	now = now.Add(keyHoldDuration / 2)
	assert.True(t, ReadKeys(s).Pause, "still held within the hold window")

	now = now.Add(keyHoldDuration)
	assert.False(t, ReadKeys(s).Pause)
}

func TestReadKeys_ClosedStreamQuits(t *testing.T) {
	s := newStream()
	close(s.ch)

	assert.True(t, ReadKeys(s).Quit)
}

func TestKeys_Any(t *testing.T) {
	assert.False(t, Keys{}.Any())
	assert.True(t, Keys{Pause: true}.Any())
}

func TestFromKeys(t *testing.T) {
	in := FromKeys(Keys{Left: true, Up: true, Space: true, Down: true, Enter: true})

	assert.Equal(t, Intent{TurnLeft: true, Thrust: true, Fire: true, Hyperspace: true, Confirm: true}, in)
}

func TestEdgeDetector(t *testing.T) {
	var d EdgeDetector

	f := d.Next(Intent{Fire: true, Thrust: true})
	assert.True(t, f.Pressed.Fire)
	assert.True(t, f.Thrust)

	f = d.Next(Intent{Fire: true, Thrust: true})
	assert.False(t, f.Pressed.Fire, "held fire does not repeat")
	assert.True(t, f.Fire)
	assert.True(t, f.Thrust, "level signals pass through")

	f = d.Next(Intent{})
	assert.False(t, f.Pressed.Fire)

	f = d.Next(Intent{Fire: true, Hyperspace: true, Pause: true, Confirm: true})
	assert.Equal(t, Edges{Fire: true, Hyperspace: true, Pause: true, Confirm: true}, f.Pressed)
}
