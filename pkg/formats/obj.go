// Package formats provides parsers for 3D model file formats.
// OBJ (Wavefront) is the only format currently supported.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyMesh       = errors.New("model contains no faces")
	ErrMalformedFace   = errors.New("malformed face element")
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// Vertex is one mesh vertex with position and normal, ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// OBJMesh is a triangle soup: every three consecutive vertices form one
// triangle. Loaded once at startup and never mutated afterwards.
type OBJMesh struct {
	Vertices   []Vertex
	HasNormals bool // true if the file supplied vertex normals
}

// TriangleCount returns the number of triangles in the mesh.
func (m *OBJMesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// LoadOBJ reads a Wavefront OBJ file from disk.
// Supported directives: v, vn, f (with v, v/vt, v//vn and v/vt/vn index
// forms, including negative relative indices). Polygons are fan-triangulated.
// Faces without normal indices get a computed flat normal. Anything else in
// the file is ignored.
func LoadOBJ(path string) (*OBJMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f)
}

// ParseOBJ parses OBJ data from any reader. See LoadOBJ.
func ParseOBJ(r io.Reader) (*OBJMesh, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		mesh      OBJMesh
	)
	mesh.HasNormals = true

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloat3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseFloat3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)

		case "f":
			if err := appendFace(&mesh, fields[1:], positions, normals); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		// vt, o, g, s, usemtl, mtllib: irrelevant here, skipped.
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	if len(mesh.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	return &mesh, nil
}

// appendFace fan-triangulates one face element and appends its triangles.
func appendFace(mesh *OBJMesh, elems []string, positions, normals [][3]float32) error {
	if len(elems) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrMalformedFace, len(elems))
	}

	type corner struct {
		pos    [3]float32
		normal [3]float32
		hasN   bool
	}

	corners := make([]corner, len(elems))
	for i, elem := range elems {
		pi, ni, err := parseFaceElement(elem)
		if err != nil {
			return err
		}

		pIdx, err := resolveIndex(pi, len(positions))
		if err != nil {
			return err
		}
		corners[i].pos = positions[pIdx]

		if ni != 0 {
			nIdx, err := resolveIndex(ni, len(normals))
			if err != nil {
				return err
			}
			corners[i].normal = normals[nIdx]
			corners[i].hasN = true
		}
	}

	for i := 1; i < len(corners)-1; i++ {
		tri := [3]corner{corners[0], corners[i], corners[i+1]}

		if !tri[0].hasN || !tri[1].hasN || !tri[2].hasN {
			// No normals in the file: fall back to the face normal so
			// lighting still works.
			n := faceNormal(tri[0].pos, tri[1].pos, tri[2].pos)
			for j := range tri {
				tri[j].normal = n
			}
			mesh.HasNormals = false
		}

		for j := range tri {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: tri[j].pos,
				Normal:   tri[j].normal,
			})
		}
	}
	return nil
}

// parseFaceElement splits "v", "v/vt", "v//vn" or "v/vt/vn" into the
// position and normal indices. A zero normal index means "not given"
// (OBJ indices are 1-based, so zero is never a valid index).
func parseFaceElement(elem string) (posIdx, normIdx int, err error) {
	parts := strings.Split(elem, "/")
	if len(parts) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedFace, elem)
	}

	posIdx, err = strconv.Atoi(parts[0])
	if err != nil || posIdx == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedFace, elem)
	}

	if len(parts) == 3 && parts[2] != "" {
		normIdx, err = strconv.Atoi(parts[2])
		if err != nil || normIdx == 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrMalformedFace, elem)
		}
	}
	return posIdx, normIdx, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index into a
// slice offset.
func resolveIndex(idx, length int) (int, error) {
	if idx > 0 {
		idx--
	} else {
		idx = length + idx
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx+1, length)
	}
	return idx, nil
}

// faceNormal computes the normalized cross product of the triangle edges.
func faceNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}

	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}

	mag := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if mag < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}
}

// parseFloat3 parses the first three fields as float32.
func parseFloat3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
