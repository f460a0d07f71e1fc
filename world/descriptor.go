package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/omath"
	"github.com/oomph-ac/roam/render"
	"github.com/samber/lo"
)

// SchemaVersion is the chunk descriptor version this package writes and expects.
const SchemaVersion = 1

var (
	defaultColor = mgl32.Vec3{0.5, 0.5, 0.5}
	emptyColor   = mgl32.Vec3{0.4, 0.4, 0.4}
)

// Descriptor is the parsed form of a chunk file. Positions and bounds are relative to the centre
// of whichever chunk the descriptor is placed in.
type Descriptor struct {
	Version  int              `json:"version"`
	ID       string           `json:"id"`
	Bounds   [6]float32       `json:"bounds"`
	Meshes   []MeshDescriptor `json:"meshes"`
	Template string           `json:"template,omitempty"`
}

// MeshDescriptor is one primitive in a chunk file.
type MeshDescriptor struct {
	Type     string    `json:"type"`
	Pos      []float32 `json:"pos,omitempty"`
	Scale    Scale     `json:"scale,omitempty"`
	Color    []float32 `json:"color,omitempty"`
	Segments int       `json:"segments,omitempty"`
	// Collidable overrides the kind's default when set.
	Collidable *bool `json:"collidable,omitempty"`
}

// Scale is either a single number applied to every axis or an [x, y, z] array. Missing or zero
// array components fall back to x, then to 1.
type Scale struct {
	V   mgl32.Vec3
	Set bool
}

func (s *Scale) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var arr []float32
		if err := json.Unmarshal(b, &arr); err != nil {
			return fmt.Errorf("decode scale array: %w", err)
		}
		at := func(i int) float32 {
			if i < len(arr) {
				return arr[i]
			}
			return 0
		}
		x := lo.CoalesceOrEmpty(at(0), 1)
		s.V = mgl32.Vec3{
			x,
			lo.CoalesceOrEmpty(at(1), at(0), 1),
			lo.CoalesceOrEmpty(at(2), at(0), 1),
		}
		s.Set = true
		return nil
	}
	var v float32
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode scale: %w", err)
	}
	s.V, s.Set = mgl32.Vec3{v, v, v}, true
	return nil
}

func (s Scale) MarshalJSON() ([]byte, error) {
	v := s.Vec()
	if v[0] == v[1] && v[1] == v[2] {
		return json.Marshal(v[0])
	}
	return json.Marshal(v[:])
}

// Vec returns the scale, defaulting to 1 on every axis when unset.
func (s Scale) Vec() mgl32.Vec3 {
	if !s.Set {
		return mgl32.Vec3{1, 1, 1}
	}
	return s.V
}

// rawDescriptor mirrors Descriptor with every required field optional, so missing fields can
// be told apart from zero values.
type rawDescriptor struct {
	Version  *int              `json:"version"`
	ID       *string           `json:"id"`
	Bounds   []float32         `json:"bounds"`
	Meshes   *[]MeshDescriptor `json:"meshes"`
	Template string            `json:"template"`
}

// DecodeDescriptor parses and validates a chunk file. A version other than SchemaVersion is
// logged and decoding continues; missing or malformed required fields are errors.
func DecodeDescriptor(data []byte, logger *slog.Logger) (*Descriptor, error) {
	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode chunk descriptor: %w", err)
	}
	if raw.Version == nil {
		return nil, fmt.Errorf("chunk descriptor missing required 'version' field")
	}
	if raw.ID == nil || *raw.ID == "" {
		return nil, fmt.Errorf("chunk descriptor missing required 'id' field")
	}
	if len(raw.Bounds) != 6 {
		return nil, fmt.Errorf("chunk descriptor 'bounds' must be 6 numbers [minX, minY, minZ, maxX, maxY, maxZ], got %d", len(raw.Bounds))
	}
	if raw.Meshes == nil {
		return nil, fmt.Errorf("chunk descriptor 'meshes' must be an array")
	}
	if *raw.Version != SchemaVersion && logger != nil {
		logger.Warn("chunk descriptor version mismatch", "expected", SchemaVersion, "got", *raw.Version, "id", *raw.ID)
	}

	d := &Descriptor{
		Version:  *raw.Version,
		ID:       *raw.ID,
		Meshes:   *raw.Meshes,
		Template: raw.Template,
	}
	copy(d.Bounds[:], raw.Bounds)
	return d, nil
}

// EncodeDescriptor ...
func EncodeDescriptor(d *Descriptor) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// BuildChunk creates the meshes of d at chunk pos. Meshes of an unknown type are replaced by a
// cube with the same placement and colour.
func BuildChunk(d *Descriptor, pos ChunkPos, size float32, r render.Renderer, logger *slog.Logger) *Chunk {
	center := pos.Center(size)
	c := &Chunk{
		ID:     pos.ID(),
		Pos:    pos,
		Meshes: make([]StaticMesh, 0, len(d.Meshes)),
		Bounds: cube.Box(
			center[0]+d.Bounds[0], d.Bounds[1], center[2]+d.Bounds[2],
			center[0]+d.Bounds[3], d.Bounds[4], center[2]+d.Bounds[5],
		),
	}
	for i, md := range d.Meshes {
		kind, err := ParseMeshKind(md.Type)
		if err != nil {
			if logger != nil {
				logger.Error("invalid mesh in chunk, substituting a cube", "chunk", c.ID, "index", i, "err", err)
			}
			kind = MeshCube
		}
		c.Meshes = append(c.Meshes, buildMesh(md, kind, center, r))
	}
	if logger != nil {
		logger.Debug("built chunk", "chunk", c.ID, "meshes", len(c.Meshes), "descriptor", d.ID)
	}
	return c
}

func buildMesh(md MeshDescriptor, kind MeshKind, center mgl32.Vec3, r render.Renderer) StaticMesh {
	var local mgl32.Vec3
	copy(local[:], md.Pos)

	scale := md.Scale.Vec()
	color := defaultColor
	for i := 0; i < len(md.Color) && i < 3; i++ {
		color[i] = omath.Clamp(md.Color[i], 0, 1)
	}

	worldPos := mgl32.Vec3{
		center[0] + local[0],
		local[1] + kind.PivotOffset(scale),
		center[2] + local[2],
	}
	return StaticMesh{
		Mesh:       kind.Create(r, scale, md.Segments),
		Kind:       kind,
		Transform:  omath.Translation(worldPos),
		Color:      color,
		Size:       kind.Extent(scale),
		Collidable: lo.FromPtrOr(md.Collidable, kind.DefaultCollidable()),
	}
}

// EmptyChunk is the stand-in for a chunk that could not be loaded: a single grey floor plane
// covering the chunk.
func EmptyChunk(pos ChunkPos, size float32, r render.Renderer) *Chunk {
	center := pos.Center(size)
	h := size / 2
	return &Chunk{
		ID:  pos.ID(),
		Pos: pos,
		Bounds: cube.Box(
			center[0]-h, -1, center[2]-h,
			center[0]+h, 5, center[2]+h,
		),
		Meshes: []StaticMesh{{
			Mesh:      r.CreatePlaneMesh(size),
			Kind:      MeshPlane,
			Transform: omath.Translation(center),
			Color:     emptyColor,
			Size:      MeshPlane.Extent(mgl32.Vec3{size, size, size}),
		}},
		Fallback: true,
	}
}
