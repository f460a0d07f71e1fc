package world

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/sasha-s/go-deadlock"
)

// ChunkCoordOffset is added to chunk coordinates when naming chunk files so that file names
// never contain negative numbers: chunk (-1, 0) lives in 9999_10000.json.
const ChunkCoordOffset = 10000

// FileSource loads chunk descriptors from a directory of JSON files, optionally zstd compressed
// (.json.zst). Descriptors are cached per chunk, and identical files are decoded once.
type FileSource struct {
	dir      string
	assetDir string
	logger   *slog.Logger

	// SharedLayout makes every chunk use the file of chunk (0, 0), placed at its own position.
	SharedLayout bool

	decoder *zstd.Decoder

	mu     deadlock.Mutex
	byPos  map[ChunkPos]*Descriptor
	byHash map[uint64]*Descriptor
}

// NewFileSource returns a source reading chunk files from dir and textures from assetDir.
func NewFileSource(dir, assetDir string, logger *slog.Logger) (*FileSource, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileSource{
		dir:      dir,
		assetDir: assetDir,
		logger:   logger,
		decoder:  dec,
		byPos:    make(map[ChunkPos]*Descriptor),
		byHash:   make(map[uint64]*Descriptor),
	}, nil
}

// FileName returns the base name, without extension, of the file holding pos.
func FileName(pos ChunkPos) string {
	return fmt.Sprintf("%d_%d", int64(pos[0])+ChunkCoordOffset, int64(pos[1])+ChunkCoordOffset)
}

// Path returns the uncompressed file path for pos.
func (s *FileSource) Path(pos ChunkPos) string {
	return filepath.Join(s.dir, FileName(pos)+".json")
}

func (s *FileSource) Load(ctx context.Context, pos ChunkPos) (*Descriptor, error) {
	if s.SharedLayout {
		pos = ChunkPos{}
	}

	s.mu.Lock()
	d, ok := s.byPos[pos]
	s.mu.Unlock()
	if ok {
		return d, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read(pos)
	if err != nil {
		return nil, err
	}
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	d, ok = s.byHash[sum]
	s.mu.Unlock()
	if !ok {
		if d, err = DecodeDescriptor(data, s.logger); err != nil {
			return nil, fmt.Errorf("chunk %v: %w", pos, err)
		}
	}

	s.mu.Lock()
	s.byHash[sum] = d
	s.byPos[pos] = d
	s.mu.Unlock()
	return d, nil
}

func (s *FileSource) read(pos ChunkPos) ([]byte, error) {
	path := s.Path(pos)
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	compressed, err := os.ReadFile(path + ".zst")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, path)
	} else if err != nil {
		return nil, fmt.Errorf("read %s.zst: %w", path, err)
	}
	data, err = s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s.zst: %w", path, err)
	}
	return data, nil
}

// LoadTexture reads the PNG data of a texture asset.
func (s *FileSource) LoadTexture(assetID string) ([]byte, error) {
	if assetID == "" || strings.ContainsAny(assetID, `/\`) || strings.Contains(assetID, "..") {
		return nil, fmt.Errorf("invalid asset id %q", assetID)
	}
	path := filepath.Join(s.assetDir, assetID+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", assetID, err)
	}
	return data, nil
}

// Cached is the number of chunk positions with a cached descriptor.
func (s *FileSource) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byPos)
}

// ClearCache drops every cached descriptor.
func (s *FileSource) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.byPos)
	clear(s.byHash)
}

// Close releases the decompressor.
func (s *FileSource) Close() {
	s.decoder.Close()
}

// SaveDescriptor writes d to path, zstd compressing it when path ends in ".zst".
func SaveDescriptor(path string, d *Descriptor) error {
	data, err := EncodeDescriptor(d)
	if err != nil {
		return fmt.Errorf("encode chunk descriptor: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close zstd encoder: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
