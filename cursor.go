// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// This file implements component A: a bounded byte cursor over the
// caller's font buffer. Every multi-byte read is bounds-checked before
// it happens; a read that would run off the end of the buffer returns
// zero instead of panicking or reading garbage. Downstream validators
// (format checks, glyph-count checks) then see valid-looking-but-empty
// data and reject it cleanly.

// u8 reads a big-endian uint8 at offset, or 0 if out of range.
func u8(b []byte, offset int) uint8 {
	if offset < 0 || offset+1 > len(b) {
		return 0
	}
	return b[offset]
}

// u16 reads a big-endian uint16 at offset, or 0 if out of range.
func u16(b []byte, offset int) uint16 {
	if offset < 0 || offset+2 > len(b) {
		return 0
	}
	return uint16(b[offset])<<8 | uint16(b[offset+1])
}

// u32 reads a big-endian uint32 at offset, or 0 if out of range.
func u32(b []byte, offset int) uint32 {
	if offset < 0 || offset+4 > len(b) {
		return 0
	}
	return uint32(b[offset])<<24 | uint32(b[offset+1])<<16 | uint32(b[offset+2])<<8 | uint32(b[offset+3])
}

// i16 reads a big-endian int16 at offset, or 0 if out of range.
func i16(b []byte, offset int) int16 {
	return int16(u16(b, offset))
}

// i32 reads a big-endian int32 at offset, or 0 if out of range.
func i32(b []byte, offset int) int32 {
	return int32(u32(b, offset))
}

// sub returns b[offset:offset+size], clamped against b's own bounds. An
// out-of-range request returns an empty (non-nil) slice rather than
// panicking.
func sub(b []byte, offset, size int) []byte {
	if offset < 0 || size < 0 || offset > len(b) {
		return b[:0]
	}
	end := offset + size
	if end < offset || end > len(b) {
		return b[:0]
	}
	return b[offset:end]
}

// A cursor is a (data, position) pair used to walk CFF INDEX, DICT, and
// charstring structures, where forward-only sequential access is the
// natural shape. Cursors are small value types: callers copy them to
// take cheap "bookmarks".
type cursor struct {
	data []byte
	pos  int
}

func newCursor(b []byte) cursor {
	return cursor{data: b}
}

func (c *cursor) len() int { return len(c.data) - c.pos }

func (c *cursor) eof() bool { return c.pos >= len(c.data) }

func (c *cursor) u8() uint8 {
	v := u8(c.data, c.pos)
	c.pos++
	return v
}

func (c *cursor) i8() int8 {
	return int8(c.u8())
}

func (c *cursor) u16() uint16 {
	v := u16(c.data, c.pos)
	c.pos += 2
	return v
}

func (c *cursor) u24() uint32 {
	v := uint32(u8(c.data, c.pos))<<16 | uint32(u8(c.data, c.pos+1))<<8 | uint32(u8(c.data, c.pos+2))
	c.pos += 3
	return v
}

func (c *cursor) u32() uint32 {
	v := u32(c.data, c.pos)
	c.pos += 4
	return v
}

func (c *cursor) skip(n int) {
	c.pos += n
}

// sub returns a sub-buffer view, clamped to this cursor's own data, as
// an independent cursor positioned at 0.
func (c *cursor) sub(offset, size int) cursor {
	return cursor{data: sub(c.data, offset, size)}
}

// peekU8At returns the byte at pos+delta without advancing, or 0 if out
// of range.
func (c *cursor) peekU8At(delta int) uint8 {
	return u8(c.data, c.pos+delta)
}
