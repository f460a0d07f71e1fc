package world

import (
	"context"
	"encoding/binary"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/zeebo/xxh3"
)

var (
	floorColor = []float32{0.5, 0, 0.5}
	propKinds  = [...]string{"cube", "pyramid", "prism", "sphere"}
)

// ProceduralSource scatters primitives over a floor plane. The layout of a chunk depends only
// on Seed and the chunk position, so a chunk regenerated after eviction is identical.
type ProceduralSource struct {
	Seed      uint64
	ChunkSize float32
	// MaxProps is the upper bound of primitives per chunk, excluding the floor.
	MaxProps int
	// SpawnClearance keeps a square of this half-width around the world origin free of props.
	SpawnClearance float32
}

// NewProceduralSource ...
func NewProceduralSource(seed uint64, chunkSize float32) ProceduralSource {
	return ProceduralSource{
		Seed:           seed,
		ChunkSize:      chunkSize,
		MaxProps:       4,
		SpawnClearance: 2,
	}
}

// ChunkSeed hashes a world seed and chunk position into the seed for that chunk.
func ChunkSeed(seed uint64, pos ChunkPos) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(pos[0]))
	binary.LittleEndian.PutUint32(buf[12:], uint32(pos[1]))
	return xxh3.Hash(buf[:])
}

func (s ProceduralSource) Load(ctx context.Context, pos ChunkPos) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(ChunkSeed(s.Seed, pos), s.Seed))

	size := s.ChunkSize
	h := size / 2
	d := &Descriptor{
		Version: SchemaVersion,
		ID:      pos.ID(),
		Bounds:  [6]float32{-h, -1, -h, h, 5, h},
		Meshes: []MeshDescriptor{{
			Type:  "plane",
			Scale: Scale{V: [3]float32{size, 1, size}, Set: true},
			Color: floorColor,
		}},
	}

	center := pos.Center(size)
	n := 0
	if s.MaxProps > 0 {
		n = rng.IntN(s.MaxProps + 1)
	}
	for i := 0; i < n; i++ {
		kind := propKinds[rng.IntN(len(propKinds))]
		scale := 0.5 + rng.Float32()*1.5
		limit := math32.Max(h-scale, 0)
		x := (rng.Float32()*2 - 1) * limit
		z := (rng.Float32()*2 - 1) * limit

		wx, wz := center[0]+x, center[2]+z
		if math32.Abs(wx) < s.SpawnClearance+scale && math32.Abs(wz) < s.SpawnClearance+scale {
			continue
		}

		md := MeshDescriptor{
			Type:  kind,
			Pos:   []float32{x, 0, z},
			Scale: Scale{V: [3]float32{scale, scale, scale}, Set: true},
			Color: []float32{0.2 + rng.Float32()*0.8, 0.2 + rng.Float32()*0.8, 0.2 + rng.Float32()*0.8},
		}
		if kind == "prism" {
			md.Scale.V[1] = scale * (1 + rng.Float32())
		}
		if kind == "sphere" {
			md.Segments = 8 + rng.IntN(9)
		}
		d.Meshes = append(d.Meshes, md)
	}
	return d, nil
}
