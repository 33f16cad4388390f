// Package protocol implements the telemetry framing the firmware streams over
// the ST-LINK virtual COM port. Frames follow the Klipper block layout:
//
//	[len][seq][payload ...][crc16 hi][crc16 lo][0x7E]
//
// where len counts the whole frame and the payload is a VLQ message id
// followed by VLQ arguments.
package protocol

// Version represents the firmware telemetry version
const Version = "0.1.0"

// Protocol constants
const (
	MessageMax         = 64 // Maximum frame size
	MessageMin         = 5  // Minimum frame size (header + trailer)
	MessageHeaderSize  = 2  // len + seq
	MessageTrailerSize = 3  // crc16 + sync
	MessagePosLen      = 0
	MessagePosSeq      = 1
	MessageValueSync   = 0x7E

	// Message sequence masks
	MessageDest     = 0x10
	MessageSeqMask  = 0x0F
	MessageSeqShift = 4
)

// Message ids
const (
	MsgBoot   = 0 // interval_ms, sysclk_hz
	MsgToggle = 1 // seq, tick, level
)
