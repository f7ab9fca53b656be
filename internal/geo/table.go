// Package geo handles geographic coordinates, the place-name reference
// table and great-circle math.
package geo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathSeparator separates the segments of a hierarchical place name,
// e.g. "United States/California/Los Angeles".
const PathSeparator = "/"

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// UnresolvedError reports a place name that has no entry in the coordinate
// reference table. It names the first missing segment and the table file so
// the operator knows exactly what to add and where.
type UnresolvedError struct {
	Place   string // full requested place name
	Segment string // first segment that failed to resolve
	Path    string // file the table was loaded from
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no coordinates for %q (missing %q, add it to %s)",
		e.Place, e.Segment, e.Path)
}

// Table is the coordinate reference table: a read-only hierarchical mapping
// from place-name segments to [latitude, longitude] pairs. It is loaded once
// and never mutated afterwards.
type Table struct {
	root map[string]*node
	path string
}

// node is one level of the reference hierarchy. A node is either a leaf
// holding coordinates or a branch holding children, depending on whether the
// YAML value was a two-element sequence or a nested mapping.
type node struct {
	coords   *Coordinates
	children map[string]*node
}

func (n *node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: want [lat, lon], got %d elements",
				value.Line, len(pair))
		}
		n.coords = &Coordinates{Lat: pair[0], Lon: pair[1]}
		return nil

	case yaml.MappingNode:
		return value.Decode(&n.children)

	default:
		return fmt.Errorf("line %d: want [lat, lon] pair or nested mapping", value.Line)
	}
}

// LoadTable reads and parses the coordinate reference file from the
// specified path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root map[string]*node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &Table{root: root, path: path}, nil
}

// Path returns the file the table was loaded from.
func (t *Table) Path() string {
	return t.path
}

// Resolve walks the table one place-name segment at a time and returns the
// coordinates at the leaf. Any missing segment, or a name that stops at a
// branch instead of a leaf, yields an *UnresolvedError — never a partial
// result.
func (t *Table) Resolve(place string) (Coordinates, error) {
	segments := strings.Split(place, PathSeparator)

	current := t.root
	var leaf *node

	for i, segment := range segments {
		next, ok := current[segment]
		if !ok {
			return Coordinates{}, &UnresolvedError{
				Place:   place,
				Segment: strings.Join(segments[:i+1], PathSeparator),
				Path:    t.path,
			}
		}

		if i == len(segments)-1 {
			leaf = next
			break
		}

		if next.children == nil {
			return Coordinates{}, &UnresolvedError{
				Place:   place,
				Segment: strings.Join(segments[:i+2], PathSeparator),
				Path:    t.path,
			}
		}
		current = next.children
	}

	if leaf == nil || leaf.coords == nil {
		return Coordinates{}, &UnresolvedError{Place: place, Segment: place, Path: t.path}
	}

	return *leaf.coords, nil
}
