package protocol

import "errors"

var (
	ErrBadCRC     = errors.New("frame CRC mismatch")
	ErrBadFrame   = errors.New("malformed frame")
	ErrBadMessage = errors.New("unexpected message arguments")
)

// Message is one decoded telemetry frame
type Message struct {
	Sequence uint8 // low four bits of the frame sequence byte
	ID       uint32
	Args     []uint32
}

// Boot is the MsgBoot payload
type Boot struct {
	IntervalMs uint32
	SysClockHz uint32
}

// Toggle is the MsgToggle payload
type Toggle struct {
	Seq  uint32
	Tick uint32
	High bool
}

// Boot returns the boot payload if m is a MsgBoot
func (m Message) Boot() (Boot, error) {
	if m.ID != MsgBoot || len(m.Args) != 2 {
		return Boot{}, ErrBadMessage
	}
	return Boot{IntervalMs: m.Args[0], SysClockHz: m.Args[1]}, nil
}

// Toggle returns the toggle payload if m is a MsgToggle
func (m Message) Toggle() (Toggle, error) {
	if m.ID != MsgToggle || len(m.Args) != 3 || m.Args[2] > 1 {
		return Toggle{}, ErrBadMessage
	}
	return Toggle{Seq: m.Args[0], Tick: m.Args[1], High: m.Args[2] == 1}, nil
}

// Decoder reassembles frames from an arbitrarily chunked byte stream.
// Bytes that cannot start a frame are skipped one at a time; a frame with
// a valid trailer but a bad CRC or payload is dropped whole.
type Decoder struct {
	buf      []byte
	skipping bool

	// Corrupt runs and dropped frames
	Errors uint32
}

// NewDecoder creates an empty Decoder
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 2*MessageMax)}
}

// Feed appends data and returns every complete message now available
func (d *Decoder) Feed(data []byte) []Message {
	buf := append(d.buf, data...)
	rest := buf

	var msgs []Message
	for len(rest) > 0 {
		msg, n, err := parseFrame(rest)
		unframed := n == 1
		if n == 0 {
			// A garbage byte can look like the length of a frame that never
			// completes; skip to a later complete frame if there is one
			if n = findFrame(rest); n == 0 {
				break // need more data
			}
			err = ErrBadFrame
			unframed = true
		}
		rest = rest[n:]
		if err != nil {
			// Count a run of unframed bytes once
			if !unframed || !d.skipping {
				d.Errors++
			}
			d.skipping = unframed
			continue
		}
		d.skipping = false
		msgs = append(msgs, msg)
	}

	// Move the partial frame to the front so the buffer does not creep
	d.buf = append(buf[:0], rest...)
	return msgs
}

// Pending returns the number of buffered bytes not yet forming a frame
func (d *Decoder) Pending() int {
	return len(d.buf)
}

// findFrame returns the offset of the first complete, valid frame after the
// start of buf, or 0 if there is none
func findFrame(buf []byte) int {
	for i := 1; i+MessageMin <= len(buf); i++ {
		if _, n, err := parseFrame(buf[i:]); n > 0 && err == nil {
			return i
		}
	}
	return 0
}

// parseFrame returns the message at the start of buf and the number of bytes
// to consume. Zero bytes with a nil error means the frame is incomplete.
func parseFrame(buf []byte) (Message, int, error) {
	msgLen := int(buf[MessagePosLen])
	if msgLen < MessageMin || msgLen > MessageMax {
		return Message{}, 1, ErrBadFrame
	}
	if len(buf) < msgLen {
		return Message{}, 0, nil
	}
	if buf[msgLen-1] != MessageValueSync {
		return Message{}, 1, ErrBadFrame
	}
	seq := buf[MessagePosSeq]
	if seq&^MessageSeqMask != MessageDest {
		return Message{}, 1, ErrBadFrame
	}

	crcPos := msgLen - MessageTrailerSize
	want := uint16(buf[crcPos])<<8 | uint16(buf[crcPos+1])
	if CRC16(buf[:crcPos]) != want {
		return Message{}, msgLen, ErrBadCRC
	}

	payload := buf[MessageHeaderSize:crcPos]
	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return Message{}, msgLen, err
	}
	msg := Message{Sequence: seq & MessageSeqMask, ID: id}
	for len(payload) > 0 {
		arg, err := DecodeVLQUint(&payload)
		if err != nil {
			return Message{}, msgLen, err
		}
		msg.Args = append(msg.Args, arg)
	}
	return msg, msgLen, nil
}
