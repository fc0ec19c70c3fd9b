package fitfile

// Base type codes as they appear in field definitions.
const (
	BaseTypeUint8  = 0x02
	BaseTypeSint16 = 0x83
	BaseTypeUint16 = 0x84
	BaseTypeSint32 = 0x85
	BaseTypeUint32 = 0x86
)

// Field numbers extracted from data messages.
const (
	FieldLatitude         = 0
	FieldLongitude        = 1
	FieldAltitude         = 5
	FieldFallbackAltitude = 6
	FieldTimestamp        = 253
)

const (
	ArchLittleEndian = 0
	ArchBigEndian    = 1
)

type FieldDefinition struct {
	Number   uint8
	Size     uint8
	BaseType uint8
}

// MessageDefinition describes the layout of the data messages sharing a local
// message type. A new definition for the same local type replaces the old one.
type MessageDefinition struct {
	GlobalNumber uint16
	Architecture uint8
	Fields       []FieldDefinition
	// DeveloperSize is the total byte size of developer fields trailing each
	// data message.
	DeveloperSize int
}

func (d *MessageDefinition) BigEndian() bool {
	return d.Architecture == ArchBigEndian
}

// DataSize is the byte length of one data message body.
func (d *MessageDefinition) DataSize() int {
	n := d.DeveloperSize
	for _, f := range d.Fields {
		n += int(f.Size)
	}
	return n
}
