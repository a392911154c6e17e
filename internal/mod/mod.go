// Package mod reads 4-channel ProTracker module files.
//
// Only the data the mixer needs is decoded: sample headers and PCM, the
// order table and the pattern notes. Effects are kept as raw command and
// parameter bytes.
package mod

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Layout of a 31-sample, 4-channel module.
const (
	titleLen         = 20
	sampleHeaderLen  = 30
	sampleNameLen    = 22
	songLengthOffset = 950
	restartOffset    = 951
	orderTableOffset = 952
	signatureOffset  = 1080
	signatureLen     = 4
	patternOffset    = 1084
	noteSize         = 4

	// NumSamples is the number of sample slots in a module.
	NumSamples = 31

	// NumOrders is the size of the order table.
	NumOrders = 128

	// Channels is the number of pattern channels.
	Channels = 4

	// Rows is the number of rows (divisions) in a pattern.
	Rows = 64

	patternSize = Rows * Channels * noteSize
)

// Errors returned by Parse.
var (
	// ErrTruncated indicates the data ends before the last pattern.
	ErrTruncated = errors.New("module data truncated")

	// ErrUnknownFormat indicates the signature is not a 4-channel module.
	ErrUnknownFormat = errors.New("unknown module format")
)

// signatures lists the tags of 4-channel, 31-sample modules.
var signatures = map[string]bool{
	"M.K.": true,
	"M!K!": true,
	"FLT4": true,
	"4CHN": true,
}

// Sample is one instrument slot. Lengths and loop points are in bytes.
type Sample struct {
	Name       string
	Length     int
	Finetune   uint8 // low nibble of the header byte
	Volume     int   // 0..64
	LoopStart  int
	LoopLength int
	Data       []int8
}

// Looped reports whether the sample has a loop. ProTracker stores a loop
// length of one word for one-shot samples.
func (s *Sample) Looped() bool {
	return s.LoopLength > 2 && s.LoopStart < len(s.Data)
}

// Note is one cell of a pattern.
type Note struct {
	Instrument int // 1..31, 0 = none
	Period     int // Paula period, 0 = none
	Effect     uint8
	Param      uint8
}

// Pattern holds 64 rows of 4 notes.
type Pattern [Rows][Channels]Note

// Module is a decoded module file.
type Module struct {
	Title      string
	Signature  string
	Samples    [NumSamples]Sample
	SongLength int
	Restart    int
	Orders     [NumOrders]int
	Patterns   []Pattern
}

// Load reads a whole module from r.
func Load(r io.Reader) (*Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}
	return Parse(data)
}

// Parse decodes a module. Sample data cut short by the end of the input is
// clipped to what is present.
func Parse(data []byte) (*Module, error) {
	if len(data) < patternOffset {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), patternOffset)
	}

	m := &Module{
		Title:     cString(data[:titleLen]),
		Signature: string(data[signatureOffset : signatureOffset+signatureLen]),
	}
	if !signatures[m.Signature] {
		return nil, fmt.Errorf("%w: signature %q", ErrUnknownFormat, m.Signature)
	}

	for i := range m.Samples {
		m.Samples[i] = parseSampleHeader(data[titleLen+i*sampleHeaderLen:])
	}

	m.SongLength = min(int(data[songLengthOffset]), NumOrders)
	m.Restart = int(data[restartOffset])

	// Every entry of the order table counts, even past the song length.
	maxPattern := 0
	for i := range m.Orders {
		m.Orders[i] = int(data[orderTableOffset+i])
		maxPattern = max(maxPattern, m.Orders[i])
	}

	numPatterns := maxPattern + 1
	end := patternOffset + numPatterns*patternSize
	if len(data) < end {
		return nil, fmt.Errorf("%w: %d patterns need %d bytes, have %d", ErrTruncated, numPatterns, end, len(data))
	}

	m.Patterns = make([]Pattern, numPatterns)
	for p := range m.Patterns {
		parsePattern(&m.Patterns[p], data[patternOffset+p*patternSize:])
	}

	offset := end
	for i := range m.Samples {
		s := &m.Samples[i]
		n := min(s.Length, max(len(data)-offset, 0))
		if n > 0 {
			s.Data = make([]int8, n)
			for j := range n {
				s.Data[j] = int8(data[offset+j])
			}
		}
		offset += s.Length
	}

	return m, nil
}

func parseSampleHeader(b []byte) Sample {
	return Sample{
		Name:       cString(b[:sampleNameLen]),
		Length:     int(binary.BigEndian.Uint16(b[22:])) * 2,
		Finetune:   b[24] & 0x0F,
		Volume:     min(int(b[25]), 64),
		LoopStart:  int(binary.BigEndian.Uint16(b[26:])) * 2,
		LoopLength: int(binary.BigEndian.Uint16(b[28:])) * 2,
	}
}

func parsePattern(p *Pattern, b []byte) {
	for row := range Rows {
		for ch := range Channels {
			p[row][ch] = DecodeNote(b[(row*Channels+ch)*noteSize:])
		}
	}
}

// DecodeNote decodes a 4-byte pattern cell.
func DecodeNote(b []byte) Note {
	_ = b[3]
	return Note{
		Instrument: int(b[0]&0xF0) | int(b[2]>>4),
		Period:     int(binary.BigEndian.Uint16(b)) & 0x0FFF,
		Effect:     b[2] & 0x0F,
		Param:      b[3],
	}
}

// EncodeNote is the inverse of DecodeNote.
func EncodeNote(n Note) [noteSize]byte {
	return [noteSize]byte{
		byte(n.Instrument&0xF0) | byte(n.Period>>8&0x0F),
		byte(n.Period),
		byte(n.Instrument&0x0F)<<4 | n.Effect&0x0F,
		n.Param,
	}
}

// cString returns the text before the first NUL, without trailing spaces.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), " ")
}
