package mod

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Bytes encodes m in the layout Parse reads. Pattern count is taken from
// len(m.Patterns); order entries must refer to existing patterns.
func (m *Module) Bytes() ([]byte, error) {
	if len(m.Patterns) == 0 {
		return nil, fmt.Errorf("%w: module has no patterns", ErrUnknownFormat)
	}
	sig := m.Signature
	if sig == "" {
		sig = "M.K."
	}
	if !signatures[sig] {
		return nil, fmt.Errorf("%w: signature %q", ErrUnknownFormat, sig)
	}

	size := patternOffset + len(m.Patterns)*patternSize
	for i := range m.Samples {
		size += len(m.Samples[i].Data) &^ 1
	}
	b := make([]byte, patternOffset, size)

	copy(b[:titleLen], m.Title)
	for i := range m.Samples {
		s := &m.Samples[i]
		h := b[titleLen+i*sampleHeaderLen:]
		copy(h[:sampleNameLen], s.Name)
		binary.BigEndian.PutUint16(h[22:], uint16(len(s.Data)/2))
		h[24] = s.Finetune & 0x0F
		h[25] = byte(min(s.Volume, 64))
		binary.BigEndian.PutUint16(h[26:], uint16(s.LoopStart/2))
		binary.BigEndian.PutUint16(h[28:], uint16(s.LoopLength/2))
	}

	b[songLengthOffset] = byte(m.SongLength)
	b[restartOffset] = byte(m.Restart)
	for i, p := range m.Orders {
		if p >= len(m.Patterns) {
			return nil, fmt.Errorf("%w: order %d refers to pattern %d of %d", ErrUnknownFormat, i, p, len(m.Patterns))
		}
		b[orderTableOffset+i] = byte(p)
	}
	copy(b[signatureOffset:], sig)

	for p := range m.Patterns {
		for row := range Rows {
			for ch := range Channels {
				cell := EncodeNote(m.Patterns[p][row][ch])
				b = append(b, cell[:]...)
			}
		}
	}

	for i := range m.Samples {
		data := m.Samples[i].Data
		for _, v := range data[:len(data)&^1] {
			b = append(b, byte(v))
		}
	}

	return b, nil
}

// WriteTo writes the encoded module to w.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	b, err := m.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
