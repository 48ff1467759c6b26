package field

import "sync"

// Points assigns a field element to every variable of a polynomial.
type Points interface {
	Point(variable int) uint64
}

// PointSet assigns g^(i+1) to variable i, where g generates the field. The
// powers are computed on first use and cached; a PointSet is safe for
// concurrent use.
type PointSet struct {
	sync.Locker
	f      Field
	points map[int]uint64
}

func NewPointSet(f Field) *PointSet {
	return &PointSet{
		Locker: &sync.Mutex{},
		f:      f,
		points: make(map[int]uint64),
	}
}

func (ps *PointSet) Point(variable int) uint64 {
	ps.Lock()
	defer ps.Unlock()

	if x, ok := ps.points[variable]; ok {
		return x
	}

	x := ps.f.Pow(ps.f.Generator(), uint64(variable)+1)
	ps.points[variable] = x

	return x
}

type prepended struct {
	x    uint64
	rest Points
}

// Prepend returns the points where variable 0 is x and variable i+1 is
// rest's variable i. It matches the renumbering done by poly.Poly.At.
func Prepend(x uint64, rest Points) Points {
	return prepended{x: x, rest: rest}
}

func (p prepended) Point(variable int) uint64 {
	if variable == 0 {
		return p.x
	}

	return p.rest.Point(variable - 1)
}
