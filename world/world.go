package world

import (
	"cmp"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/game"
	"github.com/oomph-ac/roam/render"
	"github.com/oomph-ac/roam/worker"
	"github.com/sasha-s/go-deadlock"
)

// Config configures a World.
type Config struct {
	ChunkSize  float32
	LoadRadius int32

	Source   Source
	Renderer render.Renderer
	// Pool runs chunk loads. When nil every load gets its own goroutine.
	Pool   *worker.Pool
	Logger *slog.Logger
}

// Stats are running counters of streaming activity.
type Stats struct {
	Active  int
	Pending int

	Issued    uint64
	Loaded    uint64
	Evicted   uint64
	Discarded uint64
	Failed    uint64
	Fallbacks uint64
}

// World streams chunks in a square neighbourhood around the player. Loads run asynchronously;
// their results are only applied by Poll, so the active chunk map is owned by the goroutine
// calling UpdateActiveChunks, Poll and the accessors.
type World struct {
	conf     Config
	logger   *slog.Logger
	releaser render.MeshReleaser

	chunks  map[ChunkPos]*Chunk
	pending map[ChunkPos]*LoadRequest

	center    ChunkPos
	hasCenter bool
	// backlog is set when a load could not be queued, so the next update retries even if the
	// player has not changed chunk.
	backlog bool

	neighbourhood []ChunkPos
	order         []ChunkPos
	meshes        []StaticMesh
	bboxes        []cube.BBox
	dirty         bool

	stats Stats

	ctx    context.Context
	cancel context.CancelFunc

	mu     deadlock.Mutex
	done   []*LoadRequest
	spare  []*LoadRequest
	notify chan struct{}
}

// New ...
func New(conf Config) *World {
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = game.ChunkSize
	}
	if conf.LoadRadius < 0 {
		conf.LoadRadius = 0
	}
	if conf.Source == nil {
		conf.Source = NewProceduralSource(0, conf.ChunkSize)
	}
	logger := conf.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &World{
		conf:    conf,
		logger:  logger,
		chunks:  make(map[ChunkPos]*Chunk),
		pending: make(map[ChunkPos]*LoadRequest),
		ctx:     ctx,
		cancel:  cancel,
		notify:  make(chan struct{}, 1),
	}
	w.releaser = render.Probe(conf.Renderer).Releaser
	return w
}

// ChunkSize ...
func (w *World) ChunkSize() float32 {
	return w.conf.ChunkSize
}

// UpdateActiveChunks requests every chunk in the neighbourhood of playerPos that is neither
// active nor loading, and evicts active chunks outside it. In-flight loads for chunks that fell
// out of range are forgotten and their results discarded on arrival. Calling it again from the
// same chunk does nothing.
func (w *World) UpdateActiveChunks(playerPos mgl32.Vec3) {
	center := ChunkCoordsOf(playerPos, w.conf.ChunkSize)
	if w.hasCenter && center == w.center && !w.backlog {
		return
	}
	w.center, w.hasCenter, w.backlog = center, true, false

	radius := w.conf.LoadRadius
	w.neighbourhood = ChunksInRadius(w.neighbourhood[:0], center, radius)
	for _, pos := range w.neighbourhood {
		if _, ok := w.chunks[pos]; ok {
			continue
		}
		if _, ok := w.pending[pos]; ok {
			continue
		}
		w.load(pos)
	}

	for pos, c := range w.chunks {
		if !InRadius(pos, center, radius) {
			w.evict(pos, c)
		}
	}
	for pos, req := range w.pending {
		if !InRadius(pos, center, radius) {
			delete(w.pending, pos)
			w.logger.Debug("dropped in-flight chunk load", "chunk", pos, "request", req.ID)
		}
	}
}

func (w *World) load(pos ChunkPos) {
	req := newLoadRequest(pos)
	job := func() {
		req.run(w.ctx, w.conf.Source, w.logger)
		w.complete(req)
	}

	if w.conf.Pool == nil {
		go job()
	} else if !w.conf.Pool.Submit(job) {
		w.backlog = true
		w.logger.Warn("chunk load queue full, retrying next update", "chunk", pos)
		return
	}
	w.pending[pos] = req
	w.stats.Issued++
}

func (w *World) complete(req *LoadRequest) {
	w.mu.Lock()
	w.done = append(w.done, req)
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *World) evict(pos ChunkPos, c *Chunk) {
	delete(w.chunks, pos)
	if w.releaser != nil {
		for _, m := range c.Meshes {
			w.releaser.ReleaseMesh(m.Mesh)
		}
	}
	w.dirty = true
	w.stats.Evicted++
	w.logger.Debug("evicted chunk", "chunk", pos, "center", w.center, "radius", w.conf.LoadRadius)
}

// Poll applies finished loads and returns how many chunks were added. Results for chunks that
// were evicted while loading are discarded. A failed load becomes an EmptyChunk.
func (w *World) Poll() int {
	w.mu.Lock()
	done := w.done
	w.done = w.spare[:0]
	w.mu.Unlock()

	var added int
	for _, req := range done {
		if w.pending[req.Pos] != req {
			w.stats.Discarded++
			w.logger.Debug("discarded stale chunk load", "chunk", req.Pos, "request", req.ID)
			continue
		}
		delete(w.pending, req.Pos)

		w.chunks[req.Pos] = w.build(req)
		w.stats.Loaded++
		w.dirty = true
		added++
	}

	clear(done)
	w.spare = done[:0]
	return added
}

func (w *World) build(req *LoadRequest) *Chunk {
	desc, err := req.Result()
	switch {
	case err == nil:
		return BuildChunk(desc, req.Pos, w.conf.ChunkSize, w.conf.Renderer, w.logger)
	case errors.Is(err, ErrChunkNotFound):
		w.logger.Debug("no data for chunk, using empty chunk", "chunk", req.Pos)
	default:
		w.stats.Failed++
		w.logger.Warn("chunk load failed, using empty chunk", "chunk", req.Pos, "request", req.ID, "err", err)
	}
	w.stats.Fallbacks++
	return EmptyChunk(req.Pos, w.conf.ChunkSize, w.conf.Renderer)
}

// Flush polls until no loads are pending or ctx is done. It blocks, so it is meant for startup
// and tests rather than the frame loop.
func (w *World) Flush(ctx context.Context) error {
	for {
		w.Poll()
		if len(w.pending) == 0 {
			return nil
		}
		select {
		case <-w.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *World) rebuild() {
	if !w.dirty {
		return
	}
	w.dirty = false

	w.order = w.order[:0]
	for pos := range w.chunks {
		w.order = append(w.order, pos)
	}
	slices.SortFunc(w.order, func(a, b ChunkPos) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
	})

	w.meshes, w.bboxes = w.meshes[:0], w.bboxes[:0]
	for _, pos := range w.order {
		for _, m := range w.chunks[pos].Meshes {
			w.meshes = append(w.meshes, m)
			if m.Collidable {
				w.bboxes = append(w.bboxes, m.BBox())
			}
		}
	}
}

// VisibleMeshes returns every mesh of every active chunk. The slice is reused: it must not be
// modified and is only valid until the next call that changes the chunk set.
func (w *World) VisibleMeshes() []StaticMesh {
	w.rebuild()
	return w.meshes
}

// CollidableBBoxes returns the boxes of every collidable mesh of the active chunks, under the
// same reuse rules as VisibleMeshes.
func (w *World) CollidableBBoxes() []cube.BBox {
	w.rebuild()
	return w.bboxes
}

// Chunk returns the active chunk at pos.
func (w *World) Chunk(pos ChunkPos) (*Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// Loading reports whether a load for pos is in flight.
func (w *World) Loading(pos ChunkPos) bool {
	_, ok := w.pending[pos]
	return ok
}

// ActiveChunks ...
func (w *World) ActiveChunks() int {
	return len(w.chunks)
}

// PendingLoads ...
func (w *World) PendingLoads() int {
	return len(w.pending)
}

// Stats ...
func (w *World) Stats() Stats {
	s := w.stats
	s.Active, s.Pending = len(w.chunks), len(w.pending)
	return s
}

// Close cancels in-flight loads. Their results are never applied.
func (w *World) Close() {
	w.cancel()
	clear(w.pending)
}
