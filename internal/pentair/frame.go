// Package pentair speaks the Pentair RS-485 frame format used by IntelliFlo
// variable-speed pumps. Frame layout and command set follow the protocol
// notes at https://www.wolfteck.com/2019/02/05/pentair_pump_rs-485_api/.
package pentair

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	startByte   = 0xA5
	protocolRev = 0x00

	// Bus addresses.
	addrBridge byte = 0x10 // this controller

	// Commands.
	cmdWriteRegister byte = 0x01
	cmdReadRegister  byte = 0x02
	cmdReadClock     byte = 0x03
	cmdRemoteControl byte = 0x04
	cmdPower         byte = 0x06
	cmdStatus        byte = 0x07
)

var preamble = []byte{0xFF, 0x00, 0xFF}

var (
	errShortFrame   = errors.New("pentair: short frame")
	errBadChecksum  = errors.New("pentair: checksum mismatch")
	errNoStartFound = errors.New("pentair: no frame start on wire")
)

// checksum is the 16-bit additive checksum over startByte..payload.
func checksum(body []byte) uint16 {
	var sum uint16
	for _, b := range body {
		sum += uint16(b)
	}
	return sum
}

// encodeFrame builds a full on-wire frame addressed to dst.
func encodeFrame(dst, cmd byte, payload []byte) []byte {
	body := make([]byte, 0, 5+len(payload))
	body = append(body, startByte, protocolRev, dst, addrBridge, cmd, byte(len(payload)))
	body = append(body, payload...)

	frame := make([]byte, 0, len(preamble)+len(body)+2)
	frame = append(frame, preamble...)
	frame = append(frame, body...)
	frame = binary.BigEndian.AppendUint16(frame, checksum(body))
	return frame
}

// frame is one decoded bus frame.
type frame struct {
	dst, src byte
	cmd      byte
	payload  []byte
}

// readFrame scans r for the next frame start, then reads and verifies one
// frame. The caller bounds the scan through the port's read timeout.
func readFrame(r io.Reader) (frame, error) {
	if err := scanToStart(r); err != nil {
		return frame{}, err
	}

	// rev, dst, src, cmd, len
	header := make([]byte, 5)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("%w: header: %v", errShortFrame, err)
	}
	payload := make([]byte, int(header[4]))
	if _, err := io.ReadFull(r, payload); err != nil {
		return frame{}, fmt.Errorf("%w: payload: %v", errShortFrame, err)
	}
	var sum [2]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return frame{}, fmt.Errorf("%w: checksum: %v", errShortFrame, err)
	}

	body := make([]byte, 0, 6+len(payload))
	body = append(body, startByte)
	body = append(body, header...)
	body = append(body, payload...)
	if checksum(body) != binary.BigEndian.Uint16(sum[:]) {
		return frame{}, errBadChecksum
	}
	return frame{dst: header[1], src: header[2], cmd: header[3], payload: payload}, nil
}

// scanToStart consumes bytes until the 0xA5 start byte. Leading preamble
// bytes are noise as far as decoding goes, so they are skipped along with
// anything else.
func scanToStart(r io.Reader) error {
	var b [1]byte
	for i := 0; i < 64; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return fmt.Errorf("%w: %v", errNoStartFound, err)
		}
		if b[0] == startByte {
			return nil
		}
	}
	return errNoStartFound
}
