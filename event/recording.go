package event

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/oomph-ac/roam/oerror"
	"github.com/oomph-ac/roam/platform"
)

const CurrentRecordingVer = "1"

// Recording is every frame of a session along with the world parameters needed to reproduce it.
type Recording struct {
	Version string

	Seed      int64
	ChunkSize float32
	TickRate  float64

	Events []Event
}

// Frames returns the frame events of the recording in order.
func (rec *Recording) Frames() []FrameEvent {
	frames := make([]FrameEvent, 0, len(rec.Events))
	for _, ev := range rec.Events {
		if f, ok := ev.(FrameEvent); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// WriteRecording encodes rec as a zstd compressed stream.
func WriteRecording(w io.Writer, rec *Recording) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return oerror.New("unable to create recording encoder: %v", err)
	}

	// The version goes first so that replays are able to reject recordings they can't decode.
	if _, err := io.WriteString(enc, CurrentRecordingVer+"\n"); err != nil {
		return err
	}
	header := struct {
		Seed      int64
		ChunkSize float32
		TickRate  float64
	}{rec.Seed, rec.ChunkSize, rec.TickRate}
	if err := binary.Write(enc, binary.LittleEndian, header); err != nil {
		return err
	}
	for _, ev := range rec.Events {
		if _, err := enc.Write(ev.Encode()); err != nil {
			return err
		}
	}
	return enc.Close()
}

// ReadRecording decodes a recording written by WriteRecording. It returns an error if the
// stream could not be parsed, or if the version of the recording is not supported.
func ReadRecording(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, oerror.New("unable to open recording: %v", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	version, err := br.ReadString('\n')
	if err != nil {
		return nil, oerror.New("unable to read recording version: %v", err)
	}

	rec := &Recording{Version: strings.TrimSuffix(version, "\n")}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}
	if err := binary.Read(br, binary.LittleEndian, &rec.Seed); err != nil {
		return nil, oerror.New("unable to read recording header: %v", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &rec.ChunkSize); err != nil {
		return nil, oerror.New("unable to read recording header: %v", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &rec.TickRate); err != nil {
		return nil, oerror.New("unable to read recording header: %v", err)
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, oerror.New("unable to read recording: %v", err)
	}
	if rec.Events, err = DecodeEvents(body); err != nil {
		return nil, err
	}
	return rec, nil
}

// Recorder wraps a platform's clock and input and records what they report every frame. The
// wrapped platform must be driven the way simulation.Loop.Frame drives it: the clock is updated
// before the input.
type Recorder struct {
	clock platform.Clock
	input platform.Input

	frame  int64
	events []Event
}

// NewRecorder ...
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Wrap returns p with its clock and input replaced by recording wrappers.
func (r *Recorder) Wrap(p platform.Platform) platform.Platform {
	r.clock, r.input = p.Clock, p.Input
	p.Clock = r.clock
	p.Input = recordingInput{r}
	return p
}

// Recording returns everything recorded so far.
func (r *Recorder) Recording(seed int64, chunkSize float32, tickRate float64) *Recording {
	return &Recording{
		Version:   CurrentRecordingVer,
		Seed:      seed,
		ChunkSize: chunkSize,
		TickRate:  tickRate,
		Events:    slices.Clone(r.events),
	}
}

// Frames is the number of frames recorded.
func (r *Recorder) Frames() int64 {
	return r.frame
}

type recordingInput struct {
	r *Recorder
}

func (in recordingInput) Update() {
	r := in.r
	r.input.Update()

	ev := FrameEvent{Elapsed: r.clock.DeltaTime(), Intent: r.input.Intent()}
	ev.EvTime = r.frame
	r.events = append(r.events, ev)
	r.frame++
}

func (in recordingInput) Intent() platform.Intent {
	return in.r.input.Intent()
}

// Replayer plays a recording back as a clock and input pair.
type Replayer struct {
	frames []FrameEvent
	index  int
}

// NewReplayer ...
func NewReplayer(rec *Recording) *Replayer {
	return &Replayer{frames: rec.Frames(), index: -1}
}

// Wrap returns p with its clock and input replaced by the recording.
func (rp *Replayer) Wrap(p platform.Platform) platform.Platform {
	p.Clock = replayClock{rp}
	p.Input = replayInput{rp}
	return p
}

// Done reports whether every recorded frame has been played.
func (rp *Replayer) Done() bool {
	return rp.index+1 >= len(rp.frames)
}

// Len is the number of recorded frames.
func (rp *Replayer) Len() int {
	return len(rp.frames)
}

func (rp *Replayer) current() (FrameEvent, bool) {
	if rp.index < 0 || rp.index >= len(rp.frames) {
		return FrameEvent{}, false
	}
	return rp.frames[rp.index], true
}

type replayClock struct {
	rp *Replayer
}

func (c replayClock) Update() {
	if c.rp.index < len(c.rp.frames) {
		c.rp.index++
	}
}

func (c replayClock) DeltaTime() float64 {
	f, _ := c.rp.current()
	return f.Elapsed
}

type replayInput struct {
	rp *Replayer
}

// Update does nothing: the replay clock advances the frame.
func (replayInput) Update() {}

func (in replayInput) Intent() platform.Intent {
	f, _ := in.rp.current()
	return f.Intent
}

// String ...
func (rec *Recording) String() string {
	return fmt.Sprintf("recording v%s (seed %d, %d events)", rec.Version, rec.Seed, len(rec.Events))
}
