package event

import (
	"bytes"
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/roam/platform"
)

const (
	flagToggleCamera = 1 << iota
	flagToggleDebugHUD
	flagToggleWireframe
	flagPause
)

// FrameEvent is the wall time and input intent of one frame.
type FrameEvent struct {
	NopEvent

	Elapsed float64
	Intent  platform.Intent
}

func (FrameEvent) ID() byte {
	return EventIDFrame
}

func (ev FrameEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		in := ev.Intent
		_ = binary.Write(buf, binary.LittleEndian, ev.Elapsed)
		_ = binary.Write(buf, binary.LittleEndian, [4]float32{in.Move[0], in.Move[1], in.Look.Yaw, in.Look.Pitch})

		var flags byte
		if in.ToggleCamera {
			flags |= flagToggleCamera
		}
		if in.ToggleDebugHUD {
			flags |= flagToggleDebugHUD
		}
		if in.ToggleWireframe {
			flags |= flagToggleWireframe
		}
		if in.Pause {
			flags |= flagPause
		}
		buf.WriteByte(flags)
	})
}

func (ev *FrameEvent) decode(buf *bytes.Buffer) error {
	if err := binary.Read(buf, binary.LittleEndian, &ev.Elapsed); err != nil {
		return err
	}
	var axes [4]float32
	if err := binary.Read(buf, binary.LittleEndian, &axes); err != nil {
		return err
	}
	flags, err := buf.ReadByte()
	if err != nil {
		return err
	}

	ev.Intent.Move = mgl32.Vec2{axes[0], axes[1]}
	ev.Intent.Look.Yaw, ev.Intent.Look.Pitch = axes[2], axes[3]
	ev.Intent.ToggleCamera = flags&flagToggleCamera != 0
	ev.Intent.ToggleDebugHUD = flags&flagToggleDebugHUD != 0
	ev.Intent.ToggleWireframe = flags&flagToggleWireframe != 0
	ev.Intent.Pause = flags&flagPause != 0
	return nil
}
