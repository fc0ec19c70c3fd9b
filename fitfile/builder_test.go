package fitfile

import (
	"bytes"
	"encoding/binary"
)

// fitBuilder assembles synthetic containers for tests.
type fitBuilder struct {
	body bytes.Buffer
}

func (b *fitBuilder) define(local uint8, global uint16, big bool, fields ...FieldDefinition) *fitBuilder {
	b.body.WriteByte(0x40 | local)
	b.body.WriteByte(0) // reserved
	if big {
		b.body.WriteByte(ArchBigEndian)
		_ = binary.Write(&b.body, binary.BigEndian, global)
	} else {
		b.body.WriteByte(ArchLittleEndian)
		_ = binary.Write(&b.body, binary.LittleEndian, global)
	}
	b.body.WriteByte(uint8(len(fields)))
	for _, f := range fields {
		b.body.Write([]byte{f.Number, f.Size, f.BaseType})
	}
	return b
}

func (b *fitBuilder) defineWithDeveloper(local uint8, devSizes []uint8, fields ...FieldDefinition) *fitBuilder {
	b.define(local, 20, false, fields...)
	// patch the developer flag into the header byte just written
	raw := b.body.Bytes()
	raw[len(raw)-6-3*len(fields)] |= 0x20
	b.body.WriteByte(uint8(len(devSizes)))
	for i, size := range devSizes {
		b.body.Write([]byte{uint8(i), size, 0})
	}
	return b
}

func (b *fitBuilder) record(header uint8, values ...[]byte) *fitBuilder {
	b.body.WriteByte(header)
	for _, v := range values {
		b.body.Write(v)
	}
	return b
}

func (b *fitBuilder) raw(p ...byte) *fitBuilder {
	b.body.Write(p)
	return b
}

// build wraps the body in a header of the given size and appends a dummy CRC.
func (b *fitBuilder) build(headerSize int) []byte {
	var out bytes.Buffer
	out.WriteByte(uint8(headerSize))
	out.WriteByte(0x20)
	_ = binary.Write(&out, binary.LittleEndian, uint16(2132))
	_ = binary.Write(&out, binary.LittleEndian, uint32(b.body.Len()))
	out.WriteString(Signature)
	if headerSize == headerSizeLong {
		out.Write([]byte{0, 0})
	}
	out.Write(b.body.Bytes())
	out.Write([]byte{0xAB, 0xCD})
	return out.Bytes()
}

func le16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func le32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func les32(v int32) []byte {
	return le32(uint32(v))
}

func be16(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func bes32(v int32) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(v))
}

var (
	fieldTimestamp = FieldDefinition{Number: FieldTimestamp, Size: 4, BaseType: BaseTypeUint32}
	fieldLat       = FieldDefinition{Number: FieldLatitude, Size: 4, BaseType: BaseTypeSint32}
	fieldLon       = FieldDefinition{Number: FieldLongitude, Size: 4, BaseType: BaseTypeSint32}
	fieldAltitude  = FieldDefinition{Number: FieldAltitude, Size: 2, BaseType: BaseTypeUint16}
	fieldFallback  = FieldDefinition{Number: FieldFallbackAltitude, Size: 2, BaseType: BaseTypeUint16}
	fieldHeartRate = FieldDefinition{Number: 3, Size: 1, BaseType: BaseTypeUint8}
)
