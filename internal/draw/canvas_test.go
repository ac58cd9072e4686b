package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rockfall/internal/physics"
)

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name       string
		termW      int
		termH      int
		wantCols   int
		wantRows   int
		wantOffCol int
		wantOffRow int
	}{
		{"wide terminal is height bound", 200, 43, 120, 40, 40, 2},
		{"tall terminal is width bound", 62, 100, 60, 20, 1, 40},
		{"tiny terminal", 2, 2, 1, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FitViewport(tt.termW, tt.termH, 960, 640)
			assert.Equal(t, Viewport{
				Cols:   tt.wantCols,
				Rows:   tt.wantRows,
				OffCol: tt.wantOffCol,
				OffRow: tt.wantOffRow,
			}, v)
		})
	}
}

func TestCanvas_PlotScalesAndClips(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)

	c.Plot(physics.V(50, 50))
	assert.True(t, c.Lit(5, 5))

	c.Plot(physics.V(-10, 50))
	c.Plot(physics.V(50, 1000))
	lit := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Lit(x, y) {
				lit++
			}
		}
	}
	assert.Equal(t, 1, lit)

	c.Clear()
	assert.False(t, c.Lit(5, 5))
}

func TestCanvas_DrawLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	c.DrawLine(physics.V(1, 1), physics.V(15, 7))

	assert.True(t, c.Lit(1, 1))
	assert.True(t, c.Lit(15, 7))
	assert.False(t, c.Lit(1, 7))
}

func TestCanvas_FilledPolygon(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	square := []physics.Vec2{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}

	c.DrawPolygon(square, false)
	assert.False(t, c.Lit(7, 7))

	c.DrawPolygon(square, true)
	assert.True(t, c.Lit(7, 7))
	assert.False(t, c.Lit(15, 15))

	c.Clear()
	c.DrawPolygon(square[:2], true)
	assert.False(t, c.Lit(2, 2))
}

func TestCanvas_DrawDisc(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	c.DrawDisc(physics.V(10, 10), 3)
	assert.True(t, c.Lit(10, 10))
	assert.True(t, c.Lit(12, 10))
	assert.False(t, c.Lit(10, 14))

	c.Clear()
	c.DrawDisc(physics.V(4, 4), 0.1)
	assert.True(t, c.Lit(4, 4))
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.Plot(physics.V(0, 0)) // Top half of cell (1,1)
	c.Plot(physics.V(1, 0))
	c.Plot(physics.V(1, 1)) // Both halves of cell (2,1)
	c.Plot(physics.V(3, 3)) // Bottom half of cell (4,2)

	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.SetOffset(2, 3)
	c.Render(cw)
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[4;3H▀\033[4;4H█\033[5;6H▄", buf.String())
}

func TestCanvas_RenderBorder(t *testing.T) {
	c := NewCanvas(3, 1, 3, 2)

	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.SetOffset(1, 1)
	c.RenderBorder(cw)
	require.NoError(t, cw.Flush())

	out := buf.String()
	assert.Contains(t, out, "\033[1;1H┌───┐")
	assert.Contains(t, out, "\033[2;5H│")
	assert.Contains(t, out, "\033[3;1H└───┘")
}

func TestChunkWriter_FlushesLargeFrames(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)

	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)
	assert.Equal(t, len(big), cw.Len())
	require.NoError(t, cw.Flush())

	assert.Equal(t, big, buf.String())
	assert.Zero(t, cw.Len())
}
