package world

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/oomph-ac/roam/oerror"
)

// LoadStatus is the state of an asynchronous chunk load.
type LoadStatus uint32

const (
	LoadPending LoadStatus = iota
	LoadReady
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	}
	return "unknown"
}

// LoadRequest tracks one in-flight chunk load. The result fields are written once by the
// loading goroutine before the status leaves LoadPending and are read-only afterwards.
type LoadRequest struct {
	ID  uuid.UUID
	Pos ChunkPos

	status atomic.Uint32
	desc   *Descriptor
	err    error
}

func newLoadRequest(pos ChunkPos) *LoadRequest {
	return &LoadRequest{ID: uuid.New(), Pos: pos}
}

// Status ...
func (r *LoadRequest) Status() LoadStatus {
	return LoadStatus(r.status.Load())
}

// Result returns the loaded descriptor or the error the load failed with. It must only be called
// once Status is no longer LoadPending.
func (r *LoadRequest) Result() (*Descriptor, error) {
	return r.desc, r.err
}

// run performs the load. A panicking source is reported to sentry and fails the request rather
// than leaving it pending forever.
func (r *LoadRequest) run(ctx context.Context, src Source, logger *slog.Logger) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(oerror.New("chunk load %v crashed: %v", r.Pos, err))
			hub.Flush(time.Second * 5)
			logger.Error("chunk load crashed", "chunk", r.Pos, "request", r.ID, "err", err)

			r.desc, r.err = nil, oerror.New("chunk load crashed: %v", err)
			r.status.Store(uint32(LoadFailed))
		}
	}()

	desc, err := src.Load(ctx, r.Pos)
	if err == nil && desc == nil {
		err = ErrChunkNotFound
	}
	r.desc, r.err = desc, err
	if err != nil {
		r.status.Store(uint32(LoadFailed))
		return
	}
	r.status.Store(uint32(LoadReady))
}
