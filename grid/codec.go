package grid

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encoded layout, little endian:
// magic uint32 | x int32 | y int32 | w uint32 | h uint32 | words []uint64
const (
	codecMagic      = 0x4d5a4731 // "MZG1"
	codecHeaderSize = 20
)

// MarshalBinary encodes the grid with its origin, used to persist evicted tiles
func (g *BitGrid) MarshalBinary() ([]byte, error) {
	buf := make([]byte, codecHeaderSize+8*len(g.words))
	binary.LittleEndian.PutUint32(buf[0:], codecMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(int32(g.x)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(int32(g.y)))
	binary.LittleEndian.PutUint32(buf[12:], uint32(g.w))
	binary.LittleEndian.PutUint32(buf[16:], uint32(g.h))
	for i, w := range g.words {
		binary.LittleEndian.PutUint64(buf[codecHeaderSize+8*i:], w)
	}
	return buf, nil
}

// UnmarshalBinary replaces the grid with an encoded one
func (g *BitGrid) UnmarshalBinary(data []byte) error {
	if len(data) < codecHeaderSize {
		return errors.Errorf("grid data too short: %d bytes", len(data))
	}
	if m := binary.LittleEndian.Uint32(data[0:]); m != codecMagic {
		return errors.Errorf("grid data has bad magic %#x", m)
	}
	x := int(int32(binary.LittleEndian.Uint32(data[4:])))
	y := int(int32(binary.LittleEndian.Uint32(data[8:])))
	w := int(binary.LittleEndian.Uint32(data[12:]))
	h := int(binary.LittleEndian.Uint32(data[16:]))

	n := (w*h + 63) >> 6
	if len(data) != codecHeaderSize+8*n {
		return errors.Errorf("grid data for %dx%d needs %d bytes, got %d", w, h, codecHeaderSize+8*n, len(data))
	}

	g.x, g.y, g.w, g.h = x, y, w, h
	g.words = make([]uint64, n)
	for i := range g.words {
		g.words[i] = binary.LittleEndian.Uint64(data[codecHeaderSize+8*i:])
	}
	g.clearTail()
	return nil
}
