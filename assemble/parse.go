package assemble

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bgraf/trackheat/fitfile"
	"github.com/bgraf/trackheat/geotrack"
)

type Format string

const (
	FormatFIT  Format = "fit"
	FormatGPX  Format = "gpx"
	FormatNMEA Format = "nmea"
)

// Extensions maps lower-case file extensions to formats.
var Extensions = map[string]Format{
	".fit":  FormatFIT,
	".gpx":  FormatGPX,
	".nmea": FormatNMEA,
	".nmi":  FormatNMEA,
	".log":  FormatNMEA,
}

// SupportedExtensions lists the keys of Extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(Extensions))
	for ext := range Extensions {
		exts = append(exts, ext)
	}
	return exts
}

// DetectFormat picks the format from the file extension and falls back to
// sniffing the content.
func DetectFormat(filename string, data []byte) (Format, error) {
	if f, ok := Extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return f, nil
	}

	head := bytes.TrimSpace(data[:min(len(data), 512)])
	switch {
	case fitfile.HasSignature(data):
		return FormatFIT, nil
	case bytes.HasPrefix(head, []byte("<?xml")) || bytes.Contains(head, []byte("<gpx")):
		return FormatGPX, nil
	case bytes.HasPrefix(head, []byte("$")):
		return FormatNMEA, nil
	}

	return "", fmt.Errorf("unknown track format for '%s'", filename)
}

// Parser parses single in-memory recordings of any supported format.
type Parser struct {
	Decoder fitfile.Decoder
	Policy  Policy
}

func NewParser(decoder fitfile.Decoder, policy Policy) *Parser {
	if decoder == nil {
		decoder = fitfile.ManualDecoder{}
	}
	return &Parser{Decoder: decoder, Policy: policy}
}

func (p *Parser) Parse(filename string, data []byte) (*geotrack.Track, error) {
	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGPX:
		return ParseGPX(data, filename, p.Policy)
	case FormatNMEA:
		return ParseNMEA(data, filename, p.Policy)
	}

	return ParseFIT(data, filename, p.Decoder, p.Policy)
}
