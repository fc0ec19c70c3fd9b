package fitfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Signature is the ASCII tag at bytes 8-11 of every container.
const Signature = ".FIT"

const (
	headerSizeShort = 12
	headerSizeLong  = 14
)

// ErrHeaderInvalid is returned when the fixed file header is malformed. It is
// fatal for the file being decoded only.
var ErrHeaderInvalid = errors.New("invalid FIT header")

type Header struct {
	Size            uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32
}

func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerSizeShort {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than a header", ErrHeaderInvalid, len(data))
	}

	h := Header{
		Size:            data[0],
		ProtocolVersion: data[1],
		ProfileVersion:  binary.LittleEndian.Uint16(data[2:4]),
		DataSize:        binary.LittleEndian.Uint32(data[4:8]),
	}

	if h.Size != headerSizeShort && h.Size != headerSizeLong {
		return Header{}, fmt.Errorf("%w: header length %d", ErrHeaderInvalid, h.Size)
	}
	if len(data) < int(h.Size) {
		return Header{}, fmt.Errorf("%w: truncated header", ErrHeaderInvalid)
	}
	if sig := string(data[8:12]); sig != Signature {
		return Header{}, fmt.Errorf("%w: signature %q", ErrHeaderInvalid, sig)
	}

	return h, nil
}

// HasSignature reports whether data looks like a FIT container without
// validating anything else.
func HasSignature(data []byte) bool {
	return len(data) >= headerSizeShort && string(data[8:12]) == Signature
}
