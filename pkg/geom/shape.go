package geom

import "fmt"

// ShapeKind is the shape assigned to a layout cell.
type ShapeKind int

const (
	Unset ShapeKind = iota
	Square
	Circle
	Triangle
)

var shapeNames = map[ShapeKind]string{
	Unset:    "unset",
	Square:   "square",
	Circle:   "circle",
	Triangle: "triangle",
}

func (k ShapeKind) String() string {
	if s, ok := shapeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShapeKind converts a name produced by String back into a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	for k, name := range shapeNames {
		if name == s {
			return k, nil
		}
	}
	return Unset, fmt.Errorf("unknown shape %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
