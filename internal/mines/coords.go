package mines

// Dims is the extent of every axis of a grid. Its length is the grid rank.
type Dims []int

// Coords addresses one cell. Component i is in [0, dims[i]).
type Coords []int

// Size returns the number of cells in a grid of the given dimensions.
func (d Dims) Size() int {
	if len(d) == 0 {
		return 0
	}
	size := 1
	for _, dim := range d {
		size *= dim
	}
	return size
}

// Valid reports whether every axis has a positive extent.
func (d Dims) Valid() bool {
	if len(d) == 0 {
		return false
	}
	for _, dim := range d {
		if dim <= 0 {
			return false
		}
	}
	return true
}

// Contains reports whether c has the grid's rank and lies inside it.
func (d Dims) Contains(c Coords) bool {
	if len(c) != len(d) {
		return false
	}
	for i, coord := range c {
		if coord < 0 || coord >= d[i] {
			return false
		}
	}
	return true
}

// CoordsToIndex encodes coords as a row-major flat index.
func CoordsToIndex(coords Coords, dims Dims) int {
	index := 0
	for i, coord := range coords {
		index = index*dims[i] + coord
	}
	return index
}

// IndexToCoords is the inverse of [CoordsToIndex].
func IndexToCoords(index int, dims Dims) Coords {
	coords := make(Coords, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		coords[i] = index % dims[i]
		index /= dims[i]
	}
	return coords
}

// Neighbors returns the flat indices of every in-bounds cell that differs
// from coords by at most one on each axis, excluding coords itself. Offsets
// are visited with the first axis varying slowest, so for a 2D grid the
// result is in ascending index order.
func Neighbors(coords Coords, dims Dims) []int {
	var (
		rank    = len(dims)
		offset  = make([]int, rank)
		surr    = make(Coords, rank)
		indices []int
	)
	for i := range offset {
		offset[i] = -1
	}

	for {
		if !isZero(offset) && shift(coords, offset, dims, surr) {
			indices = append(indices, CoordsToIndex(surr, dims))
		}

		// odometer over {-1, 0, 1}^rank, last axis fastest
		i := rank - 1
		for ; i >= 0; i-- {
			if offset[i] < 1 {
				offset[i]++
				break
			}
			offset[i] = -1
		}
		if i < 0 {
			return indices
		}
	}
}

func isZero(offset []int) bool {
	for _, o := range offset {
		if o != 0 {
			return false
		}
	}
	return true
}

// shift writes coords+offset into dst and reports whether it is in bounds.
func shift(coords Coords, offset []int, dims Dims, dst Coords) bool {
	for i, o := range offset {
		s := coords[i] + o
		if s < 0 || s >= dims[i] {
			return false
		}
		dst[i] = s
	}
	return true
}
