// Package event encodes the per-frame inputs of a session so that it can be recorded and
// replayed deterministically.
package event

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/oomph-ac/roam/internal"
	"github.com/oomph-ac/roam/oerror"
)

const EventsVersion = "1"

type Event interface {
	ID() byte
	Encode() []byte

	// Time is the index of the frame the event belongs to.
	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	_ = binary.Write(buf, binary.LittleEndian, uint64(ev.ID()))
	_ = binary.Write(buf, binary.LittleEndian, uint64(ev.Time()))
}

func encode(ev Event, body func(buf *bytes.Buffer)) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	WriteEventHeader(ev, buf)
	body(buf)
	return bytes.Clone(buf.Bytes())
}

func DecodeEvents(dat []byte) ([]Event, error) {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Write(dat)
	defer internal.BufferPool.Put(buf)

	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event: %v", err)
		}

		events = append(events, ev)
	}

	return events, nil
}

func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	var header [16]byte
	if _, err := io.ReadFull(buf, header[:]); err != nil {
		return nil, oerror.New("error reading event header: %v", err)
	}
	id := byte(binary.LittleEndian.Uint64(header[:8]))
	t := int64(binary.LittleEndian.Uint64(header[8:]))

	switch id {
	case EventIDFrame:
		ev := FrameEvent{}
		ev.EvTime = t
		if err := ev.decode(buf); err != nil {
			return nil, oerror.New("error decoding FrameEvent: %v", err)
		}
		return ev, nil
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
}

const (
	_ = iota
	EventIDFrame
)
