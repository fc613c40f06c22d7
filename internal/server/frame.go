package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/pkg/generic"
)

// Format selects how frames are encoded on a connection.
type Format uint8

const (
	FormatMsgpack Format = iota
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "msgpack":
		return FormatMsgpack, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatMsgpack, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

const (
	FrameSnapshot = "snapshot"
	FrameEvent    = "event"
)

// Frame is one message pushed to viewers.
type Frame struct {
	Kind     string        `json:"kind" msgpack:"kind"`
	Snapshot *sim.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Event    *EventFrame   `json:"event,omitempty" msgpack:"event,omitempty"`
}

type EventFrame struct {
	Type   string `json:"type" msgpack:"type"`
	Source string `json:"source" msgpack:"source"`
	Data   any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

// encoded holds a frame in both wire formats so it is encoded once no matter
// how many viewers receive it.
type encoded struct {
	msgpack []byte
	json    []byte
}

func (e *encoded) bytes(f Format) []byte {
	if f == FormatJSON {
		return e.json
	}
	return e.msgpack
}

var scratch = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

func encode(frame Frame) (*encoded, error) {
	buf := scratch.Get()
	defer scratch.Put(buf)

	if err := msgpack.NewEncoder(buf).Encode(&frame); err != nil {
		return nil, fmt.Errorf("msgpack %s frame: %w", frame.Kind, err)
	}
	packed := bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := json.NewEncoder(buf).Encode(&frame); err != nil {
		return nil, fmt.Errorf("json %s frame: %w", frame.Kind, err)
	}
	text := bytes.Clone(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return &encoded{msgpack: packed, json: text}, nil
}

func snapshotFrame(snap sim.Snapshot) Frame {
	return Frame{Kind: FrameSnapshot, Snapshot: &snap}
}

func eventFrame(e bus.Event) Frame {
	return Frame{Kind: FrameEvent, Event: &EventFrame{Type: e.Type(), Source: e.Source(), Data: e.Data()}}
}
