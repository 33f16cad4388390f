package protocol

// Encoder builds telemetry frames into an OutputBuffer.
type Encoder struct {
	output OutputBuffer
	seq    uint8
}

// NewEncoder creates an Encoder writing to output
func NewEncoder(output OutputBuffer) *Encoder {
	return &Encoder{output: output}
}

// EncodeFrame encodes a frame whose payload is written by frameData
func (e *Encoder) EncodeFrame(frameData func(output OutputBuffer)) {
	cursor := e.output.CurPosition()

	// Write header (length placeholder and sequence)
	e.output.Output([]byte{0, MessageDest | (e.seq & MessageSeqMask)})
	e.seq++

	// Write frame contents
	frameData(e.output)

	// Update length field
	changed := len(e.output.DataSince(cursor))
	e.output.Update(cursor, uint8(changed+MessageTrailerSize))

	// Calculate and write CRC
	crc := CRC16(e.output.DataSince(cursor))
	e.output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}

// SendMessage encodes a message id followed by its arguments
func (e *Encoder) SendMessage(msgID uint32, args ...uint32) {
	e.EncodeFrame(func(output OutputBuffer) {
		EncodeVLQUint(output, msgID)
		for _, arg := range args {
			EncodeVLQUint(output, arg)
		}
	})
}

// SendBoot announces the toggle interval and core clock after reset
func (e *Encoder) SendBoot(intervalMs, sysClockHz uint32) {
	e.SendMessage(MsgBoot, intervalMs, sysClockHz)
}

// SendToggle reports one flip of the output line
func (e *Encoder) SendToggle(seq, tick uint32, high bool) {
	var level uint32
	if high {
		level = 1
	}
	e.SendMessage(MsgToggle, seq, tick, level)
}
