// Package physics provides vector math, narrow-phase collision tests and a
// uniform grid for broad-phase queries.
package physics

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	return b.Sub(a).LenSquared()
}

// CirclesOverlap reports whether two circles touch or overlap.
// Touching circles (distance == r1+r2) count as a hit.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	sum := r1 + r2
	return DistanceSquared(c1, c2) <= sum*sum
}

// DistPointToSegment returns the distance from p to the segment ab.
// A degenerate segment (a == b) is treated as the point a.
func DistPointToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	ab2 := ab.LenSquared()
	if ab2 == 0 {
		return Distance(p, a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/ab2, 0, 1)
	return Distance(p, a.Add(ab.Scale(t)))
}

// PointInTriangle reports whether p lies inside triangle abc using
// barycentric coordinates. Points on the ab and ac edges count as inside.
func PointInTriangle(p, a, b, c Vec2) bool {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	den := dot00*dot11 - dot01*dot01
	if den == 0 {
		return false // degenerate triangle
	}
	inv := 1 / den
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v < 1
}

// CirclePolygon reports whether a circle touches a closed polygon.
//
// Two checks are needed: an edge within radius of the center catches the
// circle clipping the outline, and a fan triangulation from the first vertex
// catches the circle sitting fully inside the polygon without reaching any edge.
func CirclePolygon(center Vec2, radius float64, poly []Vec2) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		if DistPointToSegment(center, poly[i], poly[(i+1)%n]) <= radius {
			return true
		}
	}
	for i := 1; i < n-1; i++ {
		if PointInTriangle(center, poly[0], poly[i], poly[i+1]) {
			return true
		}
	}
	return false
}
