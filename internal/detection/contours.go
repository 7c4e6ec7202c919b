package detection

import (
	"math"

	"ui-finder/internal/geometry"
)

type point struct {
	X int
	Y int
}

// minComponentSize discards tiny connected components as noise before any
// area filtering happens.
const minComponentSize = 10

// findComponents finds connected components of foreground pixels in a binary
// mask. Uses flood-fill with 8-connectivity (includes diagonals).
func findComponents(mask [][]bool) [][]point {
	height := len(mask)
	if height == 0 {
		return nil
	}
	width := len(mask[0])

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	components := make([][]point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] && !visited[y][x] {
				component := make([]point, 0)
				floodFill(mask, visited, x, y, width, height, &component)
				if len(component) >= minComponentSize {
					components = append(components, component)
				}
			}
		}
	}
	return components
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large components. Marks visited pixels and appends them to the
// component. Uses 8-connectivity.
func floodFill(mask, visited [][]bool, startX, startY, width, height int, component *[]point) {
	stack := []point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !mask[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*component = append(*component, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// boundsOf returns the axis-aligned bounding box of a component.
func boundsOf(component []point) geometry.Box {
	minX, minY := component[0].X, component[0].Y
	maxX, maxY := minX, minY
	for _, p := range component[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return geometry.Box{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// mooreOffsets lists the 8 neighbors of a pixel in clockwise order starting
// west, with Y increasing downward.
var mooreOffsets = [8]point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary returns the ordered outer boundary of a connected component
// using Moore-neighbor tracing with backtracking. The result walks the
// component's outline clockwise starting from its topmost-leftmost pixel.
//
// Isolated pixels yield a single-point boundary.
func traceBoundary(component []point) []point {
	box := boundsOf(component)

	// Local occupancy grid for O(1) membership checks.
	grid := make([][]bool, box.Height)
	for y := range grid {
		grid[y] = make([]bool, box.Width)
	}
	for _, p := range component {
		grid[p.Y-box.Y][p.X-box.X] = true
	}
	inside := func(p point) bool {
		lx, ly := p.X-box.X, p.Y-box.Y
		return lx >= 0 && lx < box.Width && ly >= 0 && ly < box.Height && grid[ly][lx]
	}

	// Topmost-leftmost pixel: its west and north neighbors are background,
	// which makes the west neighbor a valid initial backtrack position.
	var start point
	found := false
	for y := 0; y < box.Height && !found; y++ {
		for x := 0; x < box.Width; x++ {
			if grid[y][x] {
				start = point{X: x + box.X, Y: y + box.Y}
				found = true
				break
			}
		}
	}

	boundary := []point{start}
	prev := point{X: start.X - 1, Y: start.Y}
	cur := start

	// Each boundary pixel is visited at most a constant number of times, so
	// the walk is bounded even on pathological one-pixel-wide shapes.
	limit := 4*len(component) + 16
	for step := 0; step < limit; step++ {
		idx := neighborIndex(cur, prev)
		advanced := false
		for i := 1; i <= 8; i++ {
			off := mooreOffsets[(idx+i)%8]
			candidate := point{X: cur.X + off.X, Y: cur.Y + off.Y}
			if inside(candidate) {
				before := mooreOffsets[(idx+i-1)%8]
				prev = point{X: cur.X + before.X, Y: cur.Y + before.Y}
				cur = candidate
				advanced = true
				break
			}
		}
		if !advanced || cur == start {
			break
		}
		boundary = append(boundary, cur)
	}
	return boundary
}

// neighborIndex returns the mooreOffsets index of neighbor relative to center.
func neighborIndex(center, neighbor point) int {
	dx := neighbor.X - center.X
	dy := neighbor.Y - center.Y
	for i, off := range mooreOffsets {
		if off.X == dx && off.Y == dy {
			return i
		}
	}
	return 0
}

// perimeterOf returns the length of a closed polyline through the points,
// counting diagonal steps as sqrt(2).
func perimeterOf(boundary []point) float64 {
	if len(boundary) < 2 {
		return 0
	}
	total := 0.0
	for i := range boundary {
		next := boundary[(i+1)%len(boundary)]
		dx := float64(next.X - boundary[i].X)
		dy := float64(next.Y - boundary[i].Y)
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// enclosedArea returns the area enclosed by a closed polyline (shoelace
// formula). Degenerate boundaries enclose zero area.
func enclosedArea(boundary []point) float64 {
	if len(boundary) < 3 {
		return 0
	}
	sum := 0.0
	for i := range boundary {
		next := boundary[(i+1)%len(boundary)]
		sum += float64(boundary[i].X*next.Y - next.X*boundary[i].Y)
	}
	return math.Abs(sum) / 2
}

// approxPolygon simplifies a closed boundary with the Douglas-Peucker
// algorithm at the given tolerance and returns the surviving vertices.
//
// The boundary is first rotated to start at the point farthest from its
// centroid, so that a dominant corner anchors the simplification; otherwise
// a trace starting mid-edge would pin an extra pseudo-vertex there.
func approxPolygon(boundary []point, epsilon float64) []point {
	if len(boundary) < 3 {
		out := make([]point, len(boundary))
		copy(out, boundary)
		return out
	}

	// Centroid and farthest point.
	var cx, cy float64
	for _, p := range boundary {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(boundary))
	cy /= float64(len(boundary))

	pivot := 0
	best := -1.0
	for i, p := range boundary {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		if d := dx*dx + dy*dy; d > best {
			best = d
			pivot = i
		}
	}

	rotated := make([]point, 0, len(boundary)+1)
	rotated = append(rotated, boundary[pivot:]...)
	rotated = append(rotated, boundary[:pivot]...)
	rotated = append(rotated, boundary[pivot]) // close the loop

	simplified := douglasPeucker(rotated, epsilon)
	return simplified[:len(simplified)-1] // drop the duplicated closing point
}

// douglasPeucker recursively simplifies an open polyline, keeping points
// farther than epsilon from the chord between the endpoints.
func douglasPeucker(points []point, epsilon float64) []point {
	if len(points) < 3 {
		out := make([]point, len(points))
		copy(out, points)
		return out
	}

	last := len(points) - 1
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < last; i++ {
		if d := perpendicularDistance(points[i], points[0], points[last]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []point{points[0], points[last]}
	}

	left := douglasPeucker(points[:maxIdx+1], epsilon)
	right := douglasPeucker(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a
// and b, or the distance to a when the segment is degenerate.
func perpendicularDistance(p, a, b point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		px := float64(p.X - a.X)
		py := float64(p.Y - a.Y)
		return math.Sqrt(px*px + py*py)
	}
	return math.Abs(dx*float64(p.Y-a.Y)-dy*float64(p.X-a.X)) / length
}
