package protocol

import "testing"

func encodeToggles(n int, startTick uint32) []byte {
	out := NewScratchOutput()
	enc := NewEncoder(out)
	var stream []byte
	for i := 0; i < n; i++ {
		out.Reset()
		enc.SendToggle(uint32(i+1), startTick+uint32(i)*250, i%2 == 0)
		stream = append(stream, out.Result()...)
	}
	return stream
}

func TestDecoderRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	enc := NewEncoder(out)
	enc.SendBoot(250, 84000000)
	enc.SendToggle(1, 0, true)

	msgs := NewDecoder().Feed(out.Result())
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	boot, err := msgs[0].Boot()
	if err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}
	if boot.IntervalMs != 250 || boot.SysClockHz != 84000000 {
		t.Errorf("unexpected boot payload %+v", boot)
	}

	toggle, err := msgs[1].Toggle()
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if toggle.Seq != 1 || toggle.Tick != 0 || !toggle.High {
		t.Errorf("unexpected toggle payload %+v", toggle)
	}
	if msgs[1].Sequence != 1 {
		t.Errorf("expected frame sequence 1, got %d", msgs[1].Sequence)
	}
}

func TestDecoderByteAtATime(t *testing.T) {
	stream := encodeToggles(5, 0xFFFFFF00)
	dec := NewDecoder()

	var got []Toggle
	for _, b := range stream {
		for _, msg := range dec.Feed([]byte{b}) {
			toggle, err := msg.Toggle()
			if err != nil {
				t.Fatalf("Toggle() failed: %v", err)
			}
			got = append(got, toggle)
		}
	}

	if len(got) != 5 {
		t.Fatalf("expected 5 toggles, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if gap := got[i].Tick - got[i-1].Tick; gap != 250 {
			t.Errorf("toggle %d: gap %d, want 250", got[i].Seq, gap)
		}
	}
	if dec.Pending() != 0 || dec.Errors != 0 {
		t.Errorf("expected clean decoder, pending=%d errors=%d", dec.Pending(), dec.Errors)
	}
}

func TestDecoderSkipsGarbage(t *testing.T) {
	stream := append([]byte{0xAA, 0xBB, 0x7E, 0x00}, encodeToggles(2, 0)...)

	dec := NewDecoder()
	msgs := dec.Feed(stream)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after garbage, got %d", len(msgs))
	}
	if dec.Errors != 1 {
		t.Errorf("expected one error for the garbage run, got %d", dec.Errors)
	}
}

func TestDecoderDropsBadCRC(t *testing.T) {
	stream := encodeToggles(3, 0)
	frameLen := int(stream[0])
	stream[frameLen+3] ^= 0x01 // corrupt the second frame's payload

	dec := NewDecoder()
	msgs := dec.Feed(stream)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 surviving messages, got %d", len(msgs))
	}
	first, _ := msgs[0].Toggle()
	third, _ := msgs[1].Toggle()
	if first.Seq != 1 || third.Seq != 3 {
		t.Errorf("expected seqs 1 and 3, got %d and %d", first.Seq, third.Seq)
	}
	if dec.Errors != 1 {
		t.Errorf("expected 1 CRC error, got %d", dec.Errors)
	}
}

func TestDecoderWaitsForPartialFrame(t *testing.T) {
	stream := encodeToggles(1, 0)
	dec := NewDecoder()

	if msgs := dec.Feed(stream[:4]); len(msgs) != 0 {
		t.Fatalf("expected no messages from a partial frame, got %d", len(msgs))
	}
	if dec.Pending() != 4 {
		t.Errorf("expected 4 pending bytes, got %d", dec.Pending())
	}
	if msgs := dec.Feed(stream[4:]); len(msgs) != 1 {
		t.Errorf("expected the frame once complete, got %d", len(msgs))
	}
}

func TestMessagePayloadChecks(t *testing.T) {
	if _, err := (Message{ID: MsgBoot, Args: []uint32{250, 84000000}}).Toggle(); err != ErrBadMessage {
		t.Errorf("expected ErrBadMessage reading a boot frame as toggle, got %v", err)
	}
	if _, err := (Message{ID: MsgToggle, Args: []uint32{1, 0, 2}}).Toggle(); err != ErrBadMessage {
		t.Errorf("expected ErrBadMessage for level 2, got %v", err)
	}
	if _, err := (Message{ID: MsgBoot, Args: []uint32{250}}).Boot(); err != ErrBadMessage {
		t.Errorf("expected ErrBadMessage for short boot frame, got %v", err)
	}
}

func TestDecoderSkipsFalseLength(t *testing.T) {
	// 0x20 reads as a 32-byte frame that never arrives
	stream := append([]byte("boot: \r\n"), encodeToggles(2, 0)...)

	dec := NewDecoder()
	msgs := dec.Feed(stream)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after text, got %d", len(msgs))
	}
	if dec.Errors != 1 {
		t.Errorf("expected the text to count as one error, got %d", dec.Errors)
	}
	if dec.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d bytes", dec.Pending())
	}
}
