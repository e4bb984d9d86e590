package geom

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Coordinate is an immutable (x, y, z) position. The zero value is the origin.
type Coordinate struct {
	x, y, z float64
}

func NewCoordinate(x, y, z float64) Coordinate {
	return Coordinate{x: x, y: y, z: z}
}

// CoordinateFromSlice builds a coordinate from up to three values; missing
// trailing components are 0 and extra ones are ignored.
func CoordinateFromSlice(values []float64) Coordinate {
	var c Coordinate
	if len(values) > 0 {
		c.x = values[0]
	}
	if len(values) > 1 {
		c.y = values[1]
	}
	if len(values) > 2 {
		c.z = values[2]
	}
	return c
}

func (c Coordinate) X() float64 { return c.x }
func (c Coordinate) Y() float64 { return c.y }
func (c Coordinate) Z() float64 { return c.z }

// EqualsPlanar compares x and y only.
func (c Coordinate) EqualsPlanar(other Coordinate) bool {
	return c.x == other.x && c.y == other.y
}

func (c Coordinate) Equals(other Coordinate) bool {
	return c.EqualsPlanar(other) && c.z == other.z
}

// Compare orders by x, then y. z is not part of the order, so coordinates
// that differ only in elevation compare equal.
func (c Coordinate) Compare(other *Coordinate) (int, error) {
	if other == nil {
		return 0, errors.Wrap(ErrInvalidArgument, "compare: other coordinate is nil")
	}
	return CompareCoordinates(c, *other), nil
}

// CompareCoordinates is the infallible form of Compare, usable with
// slices.SortFunc.
func CompareCoordinates(a, b Coordinate) int {
	switch {
	case a.x < b.x:
		return -1
	case a.x > b.x:
		return 1
	case a.y < b.y:
		return -1
	case a.y > b.y:
		return 1
	}
	return 0
}

// Distance is the Euclidean distance to other over (x, y), or (x, y, z)
// when includeZ is set.
func (c Coordinate) Distance(other Coordinate, includeZ bool) float64 {
	dx, dy := c.x-other.x, c.y-other.y
	if !includeZ {
		return math.Hypot(dx, dy)
	}
	dz := c.z - other.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Token renders "x y" or "x y z".
func (c Coordinate) Token(includeZ bool) string {
	var b strings.Builder
	b.WriteString(formatFloat(c.x))
	b.WriteByte(' ')
	b.WriteString(formatFloat(c.y))
	if includeZ {
		b.WriteByte(' ')
		b.WriteString(formatFloat(c.z))
	}
	return b.String()
}

func (c Coordinate) String() string { return c.Token(true) }

// formatFloat renders the shortest decimal that round-trips, switching to
// exponent form outside [1e-6, 1e21) like encoding/json does.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s
}
