package fitfile

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/bgraf/trackheat/option"
)

// GPSRecord is a data message that carried both coordinate fields. The
// coordinates are the raw integers as stored, before any unit interpretation.
type GPSRecord struct {
	RawLat    int64
	RawLon    int64
	Timestamp option.Option[time.Time]
	Elevation option.Option[float64]
}

// Decoder turns a container held in memory into GPS records.
type Decoder interface {
	Name() string
	Decode(data []byte) ([]GPSRecord, error)
}

const (
	DecoderManual  = "manual"
	DecoderLibrary = "library"
)

// NewDecoder returns the decoder registered under name. The empty name
// selects the manual decoder.
func NewDecoder(name string) (Decoder, error) {
	switch name {
	case "", DecoderManual:
		return ManualDecoder{}, nil
	case DecoderLibrary:
		return LibraryDecoder{}, nil
	}
	return nil, fmt.Errorf("unknown decoder '%s'", name)
}

// Bytes skipped when a data message references a local type that has no
// definition yet.
const unknownLocalTypeSkip = 10

// ManualDecoder walks the record stream directly and only materializes the
// fields needed for GPS tracks. It is best effort: corrupt or truncated
// streams yield whatever records were decoded before the damage.
type ManualDecoder struct{}

func (ManualDecoder) Name() string {
	return DecoderManual
}

func (ManualDecoder) Decode(data []byte) ([]GPSRecord, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	end := int(h.Size) + int(h.DataSize)
	if h.DataSize == 0 || end > len(data) {
		end = len(data)
	}

	s := &stream{data: data[:end], pos: int(h.Size)}
	s.run()

	return s.records, nil
}

type stream struct {
	data    []byte
	pos     int
	defs    [16]*MessageDefinition
	records []GPSRecord
}

func (s *stream) has(n int) bool {
	return s.pos+n <= len(s.data)
}

func (s *stream) run() {
	for s.pos < len(s.data) {
		hdr := s.data[s.pos]
		s.pos++

		var ok bool
		switch {
		case hdr&0x80 != 0:
			// compressed timestamp header: local type lives in bits 5-6
			ok = s.readData((hdr >> 5) & 0x03)
		case hdr&0x40 != 0:
			ok = s.readDefinition(hdr&0x0F, hdr&0x20 != 0)
		default:
			ok = s.readData(hdr & 0x0F)
		}

		if !ok {
			return
		}
	}
}

func (s *stream) readDefinition(local uint8, developer bool) bool {
	if !s.has(5) {
		return false
	}

	def := &MessageDefinition{Architecture: s.data[s.pos+1]}
	if def.BigEndian() {
		def.GlobalNumber = binary.BigEndian.Uint16(s.data[s.pos+2:])
	} else {
		def.GlobalNumber = binary.LittleEndian.Uint16(s.data[s.pos+2:])
	}
	count := int(s.data[s.pos+4])
	s.pos += 5

	if !s.has(count * 3) {
		return false
	}
	def.Fields = make([]FieldDefinition, count)
	for i := range def.Fields {
		def.Fields[i] = FieldDefinition{
			Number:   s.data[s.pos],
			Size:     s.data[s.pos+1],
			BaseType: s.data[s.pos+2],
		}
		s.pos += 3
	}

	if developer {
		if !s.has(1) {
			return false
		}
		n := int(s.data[s.pos])
		s.pos++
		if !s.has(n * 3) {
			return false
		}
		for i := 0; i < n; i++ {
			def.DeveloperSize += int(s.data[s.pos+1])
			s.pos += 3
		}
	}

	s.defs[local] = def
	return true
}

func (s *stream) readData(local uint8) bool {
	def := s.defs[local]
	if def == nil {
		s.pos += unknownLocalTypeSkip
		return true
	}

	if !s.has(def.DataSize()) {
		return false
	}

	var (
		rec            GPSRecord
		hasLat, hasLon bool
		fallbackAlt    option.Option[float64]
	)

	big := def.BigEndian()
	for _, f := range def.Fields {
		raw := s.data[s.pos : s.pos+int(f.Size)]
		s.pos += int(f.Size)

		switch f.Number {
		case FieldLatitude:
			rec.RawLat, hasLat = coordinate(raw, f.BaseType, big)
		case FieldLongitude:
			rec.RawLon, hasLon = coordinate(raw, f.BaseType, big)
		case FieldTimestamp:
			if v, ok := unsigned(raw, big); ok && !isInvalid(v, len(raw)) {
				rec.Timestamp = option.Some(ContainerTime(v))
			}
		case FieldAltitude:
			rec.Elevation = altitude(raw, big)
		case FieldFallbackAltitude:
			fallbackAlt = altitude(raw, big)
		}
	}
	s.pos += def.DeveloperSize

	if rec.Elevation.IsNone() {
		rec.Elevation = fallbackAlt
	}

	if hasLat && hasLon {
		s.records = append(s.records, rec)
	}

	return true
}

func unsigned(raw []byte, big bool) (uint64, bool) {
	var order binary.ByteOrder = binary.LittleEndian
	if big {
		order = binary.BigEndian
	}

	switch len(raw) {
	case 1:
		return uint64(raw[0]), true
	case 2:
		return uint64(order.Uint16(raw)), true
	case 4:
		return uint64(order.Uint32(raw)), true
	case 8:
		var low, high uint32
		if big {
			high, low = order.Uint32(raw[:4]), order.Uint32(raw[4:])
		} else {
			low, high = order.Uint32(raw[:4]), order.Uint32(raw[4:])
		}
		return uint64(low) + uint64(high)*(1<<32), true
	}

	return 0, false
}

// isInvalid reports whether v is the all-ones "no value" marker for an
// unsigned field of the given width.
func isInvalid(v uint64, size int) bool {
	switch size {
	case 1:
		return v == math.MaxUint8
	case 2:
		return v == math.MaxUint16
	case 4:
		return v == math.MaxUint32
	case 8:
		return v == math.MaxUint64
	}
	return false
}

// coordinate decodes a latitude or longitude field. 4-byte values are always
// reinterpreted as signed; 2-byte values are sign-extended for base types
// 0x83 and 0x84.
func coordinate(raw []byte, baseType uint8, big bool) (int64, bool) {
	v, ok := unsigned(raw, big)
	if !ok {
		return 0, false
	}

	switch len(raw) {
	case 2:
		if baseType == BaseTypeSint16 || baseType == BaseTypeUint16 {
			if v == math.MaxInt16 {
				return 0, false
			}
			return int64(int16(uint16(v))), true
		}
	case 4:
		if v == math.MaxInt32 {
			return 0, false
		}
		return int64(int32(uint32(v))), true
	case 8:
		return int64(v), true
	}

	return int64(v), true
}

func altitude(raw []byte, big bool) option.Option[float64] {
	v, ok := unsigned(raw, big)
	if !ok || isInvalid(v, len(raw)) {
		return option.None[float64]()
	}
	return option.Some(float64(v)/5 - 500)
}
