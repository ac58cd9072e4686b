package loop

import (
	"time"

	"github.com/tomz197/rockfall/internal/game"
	"github.com/tomz197/rockfall/internal/object"
)

// minParticleAlpha hides particles in the last part of their life.
const minParticleAlpha = 0.15

// drawFrame composes the playfield and overlays and flushes them in one write.
func (s *session) drawFrame(now time.Time) error {
	s.cw.Clear()
	s.canvas.Clear()

	if s.round.State() != game.StateMenu {
		s.drawWorld()
	}
	s.canvas.Render(s.cw)
	s.canvas.RenderBorder(s.cw)

	s.drawUI(now)

	return s.cw.Flush()
}

// drawWorld rasterizes every live entity onto the canvas.
func (s *session) drawWorld() {
	r := s.round
	c := s.canvas

	poly := c.BorrowPoints(r.Config().Obstacle.Vertices)
	for _, o := range r.Obstacles() {
		poly = o.Polygon(poly)
		c.DrawPolygon(poly, false)
	}

	for _, p := range r.Projectiles() {
		c.DrawDisc(p.Pos, p.Radius)
	}

	for _, p := range r.Particles() {
		if p.Alpha() < minParticleAlpha {
			continue
		}
		c.Plot(p.Pos)
		if p.Kind == object.ParticleExplosion && p.Alpha() > 0.6 {
			c.Plot(p.Pos.Add(p.Vel.Scale(0.02)))
		}
	}

	craft := r.Craft()
	if r.State() != game.StateGameOver && craft.Visible {
		v := craft.Vertices()
		c.DrawPolygon(v[:], true)
	}
}
