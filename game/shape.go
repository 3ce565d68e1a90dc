package game

import "math"

// HexShape builds the occupancy mask of a hexagon-like board inside a
// rectangular grid. The grid is n+2*m0 wide and h tall; row i keeps a wall
// margin of max(m0-min(i, h-1-i), 0) cells on both sides, so the playable band
// is widest in the middle rows and narrows toward the top and bottom.
func HexShape(n, h, m0 int) [][]Cell {
	n, h, m0 = nonNegative(n), nonNegative(h), nonNegative(m0)
	width := n + 2*m0

	shape := make([][]Cell, h)
	for i := 0; i < h; i++ {
		margin := max(m0-min(i, h-1-i), 0)
		row := make([]Cell, width)
		for j := range row {
			if j < margin || j >= width-margin {
				row[j] = Wall
			}
		}
		shape[i] = row
	}
	return shape
}

// RectShape builds an h×w mask with every cell playable.
func RectShape(h, w int) [][]Cell {
	h, w = nonNegative(h), nonNegative(w)
	shape := make([][]Cell, h)
	for i := range shape {
		shape[i] = make([]Cell, w)
	}
	return shape
}

const (
	VertexWeight     = 100.0
	NearVertexWeight = -2.0
)

// vertexNeighbours is the order in which the cells around a vertex are
// penalised, orthogonal ones first.
var vertexNeighbours = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// PositionWeights scores each playable cell for the positional greedy seat.
// Vertices of the playable outline weigh VertexWeight and up to four of their
// playable neighbours NearVertexWeight. Every other playable cell weighs its
// distance from the board centre, scaled to [0, 2]. Wall cells weigh 0.
func PositionWeights(shape [][]Cell) [][]float64 {
	weights := make([][]float64, len(shape))
	if len(shape) == 0 {
		return weights
	}
	fixed := make([][]bool, len(shape))
	for i, row := range shape {
		weights[i] = make([]float64, len(row))
		fixed[i] = make([]bool, len(row))
	}
	free := func(i, j int) bool {
		return i >= 0 && i < len(shape) && j >= 0 && j < len(shape[i]) &&
			shape[i][j] != Wall && !fixed[i][j]
	}

	vertices := outlineVertices(shape)
	for _, v := range vertices {
		weights[v[0]][v[1]] = VertexWeight
		fixed[v[0]][v[1]] = true
	}
	for _, v := range vertices {
		marked := 0
		for _, d := range vertexNeighbours {
			i, j := v[0]+d[0], v[1]+d[1]
			if free(i, j) {
				weights[i][j] = NearVertexWeight
				fixed[i][j] = true
				marked++
			}
			if marked == 4 {
				break
			}
		}
	}

	centerRow, centerCol := len(shape)/2, len(shape[0])/2
	distance := func(i, j int) float64 {
		return math.Hypot(float64(i-centerRow), float64(j-centerCol))
	}

	dMax := 0.0
	for i, row := range shape {
		for j := range row {
			if free(i, j) {
				dMax = math.Max(dMax, distance(i, j))
			}
		}
	}
	if dMax == 0 {
		dMax = 1
	}

	for i, row := range shape {
		for j := range row {
			if free(i, j) {
				weights[i][j] = 2 * distance(i, j) / dMax
			}
		}
	}
	return weights
}

// outlineVertices returns the ends of the top and bottom rows, then both ends
// of the first row spanning the full width, without duplicates.
func outlineVertices(shape [][]Cell) [][2]int {
	var vertices [][2]int
	add := func(i, j int) {
		v := [2]int{i, j}
		for _, seen := range vertices {
			if seen == v {
				return
			}
		}
		vertices = append(vertices, v)
	}

	for _, i := range []int{0, len(shape) - 1} {
		first, last := -1, -1
		for j, c := range shape[i] {
			if c != Wall {
				if first < 0 {
					first = j
				}
				last = j
			}
		}
		if first >= 0 {
			add(i, first)
			add(i, last)
		}
	}
	for i, row := range shape {
		if len(row) > 0 && row[0] != Wall && row[len(row)-1] != Wall {
			add(i, 0)
			add(i, len(row)-1)
			break
		}
	}
	return vertices
}

func nonNegative(x int) int {
	if x < 0 {
		return 0
	}
	return x
}
