package world

import (
	"context"
	"errors"
)

// ErrChunkNotFound is returned by a Source that has no data for a chunk. The streamer fills
// such chunks with EmptyChunk without treating it as a failure.
var ErrChunkNotFound = errors.New("chunk not found")

// Source produces chunk descriptors. Load is called from worker goroutines and must be safe for
// concurrent use. It must not touch the renderer: meshes are created when the chunk is added
// to the world.
type Source interface {
	Load(ctx context.Context, pos ChunkPos) (*Descriptor, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, pos ChunkPos) (*Descriptor, error)

func (f SourceFunc) Load(ctx context.Context, pos ChunkPos) (*Descriptor, error) {
	return f(ctx, pos)
}
