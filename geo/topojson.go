package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoObject is returned when the requested object is missing from the topology
var ErrNoObject = errors.New("topology object not found")

// Feature is a decoded polygon feature; each polygon is a list of rings
type Feature struct {
	ID       string
	Name     string
	Polygons [][]Line
}

type topology struct {
	Type      string              `json:"type"`
	Transform *transform          `json:"transform"`
	Objects   map[string]geometry `json:"objects"`
	Arcs      [][][]float64       `json:"arcs"`
}

type transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type geometry struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []geometry      `json:"geometries"`
}

// DecodeTopoJSON reads a topology and converts the named object into features
// Quantized topologies are delta-decoded, negative arc indexes are reversed (~i)
func DecodeTopoJSON(r io.Reader, object string) ([]Feature, error) {
	var topo topology
	if err := json.NewDecoder(r).Decode(&topo); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}
	obj, ok := topo.Objects[object]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoObject, object)
	}

	arcs := decodeArcs(topo.Arcs, topo.Transform)

	var features []Feature
	var walk func(g geometry) error
	walk = func(g geometry) error {
		switch g.Type {
		case "GeometryCollection":
			for _, child := range g.Geometries {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		case "Polygon":
			var rings [][]int
			if err := json.Unmarshal(g.Arcs, &rings); err != nil {
				return fmt.Errorf("polygon arcs: %w", err)
			}
			poly, err := buildPolygon(arcs, rings)
			if err != nil {
				return err
			}
			features = append(features, newFeature(g, [][]Line{poly}))
			return nil
		case "MultiPolygon":
			var polys [][][]int
			if err := json.Unmarshal(g.Arcs, &polys); err != nil {
				return fmt.Errorf("multipolygon arcs: %w", err)
			}
			out := make([][]Line, 0, len(polys))
			for _, rings := range polys {
				poly, err := buildPolygon(arcs, rings)
				if err != nil {
					return err
				}
				out = append(out, poly)
			}
			features = append(features, newFeature(g, out))
			return nil
		default:
			// Points, lines and null geometries carry no outline
			return nil
		}
	}
	if err := walk(obj); err != nil {
		return nil, err
	}
	return features, nil
}

func newFeature(g geometry, polys [][]Line) Feature {
	f := Feature{Polygons: polys}
	if len(g.ID) > 0 {
		var s string
		if json.Unmarshal(g.ID, &s) == nil {
			f.ID = s
		} else {
			f.ID = string(g.ID)
		}
	}
	if name, ok := g.Properties["name"].(string); ok {
		f.Name = name
	}
	return f
}

// decodeArcs converts raw arcs to absolute lon/lat positions
func decodeArcs(raw [][][]float64, tf *transform) []Line {
	out := make([]Line, len(raw))
	for i, arc := range raw {
		line := make(Line, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if tf != nil {
				x += pos[0]
				y += pos[1]
				line = append(line, LonLat{
					Lon: x*tf.Scale[0] + tf.Translate[0],
					Lat: y*tf.Scale[1] + tf.Translate[1],
				})
			} else {
				line = append(line, LonLat{Lon: pos[0], Lat: pos[1]})
			}
		}
		out[i] = line
	}
	return out
}

// buildPolygon stitches arc references into rings, dropping the shared point between arcs
func buildPolygon(arcs []Line, rings [][]int) ([]Line, error) {
	poly := make([]Line, 0, len(rings))
	for _, refs := range rings {
		var ring Line
		for _, ref := range refs {
			idx, reversed := ref, false
			if ref < 0 {
				idx, reversed = ^ref, true
			}
			if idx >= len(arcs) {
				return nil, fmt.Errorf("arc index %d out of range (%d arcs)", idx, len(arcs))
			}
			arc := arcs[idx]
			if len(ring) > 0 && len(arc) > 0 {
				ring = ring[:len(ring)-1]
			}
			if reversed {
				for i := len(arc) - 1; i >= 0; i-- {
					ring = append(ring, arc[i])
				}
			} else {
				ring = append(ring, arc...)
			}
		}
		poly = append(poly, ring)
	}
	return poly, nil
}
