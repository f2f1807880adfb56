// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// This file implements component K: the name-table lookup used to
// match fonts by family/subfamily string. decodeUTF16 is carried over
// verbatim in behavior from truetype/runes.go (only the teacher's
// unused ioutil.ReadAll is replaced with io.ReadAll, the rest of the
// decode pipeline is unchanged).

const (
	nameIDFamily       = 1
	nameIDSubfamily    = 2
	nameIDFullName     = 4
	nameIDPreferredFam = 16
	nameIDPreferredSub = 17
)

// decodeUTF16 decodes big-endian UTF-16 name-table string data to UTF-8.
func decodeUTF16(b []byte) ([]byte, error) {
	r := bytes.NewReader(b)
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	r2 := transform.NewReader(r, enc.NewDecoder())
	return io.ReadAll(r2)
}

// nameRecordString returns the UTF-8 decoding of the nameID-th record
// found for platformID/encodingID, preferring the given languageID but
// falling back to any language, or "" if no matching record exists.
func (f *Font) nameRecordString(platformID, encodingID, languageID, nameID int) string {
	n := f.name.bytes(f.data)
	if len(n) < 6 {
		return ""
	}
	count := int(u16(n, 2))
	stringOffset := int(u16(n, 4))
	if len(n) < 6+12*count {
		return ""
	}

	var fallback string
	for i := 0; i < count; i++ {
		rec := 6 + 12*i
		pID := int(u16(n, rec))
		eID := int(u16(n, rec+2))
		lID := int(u16(n, rec+4))
		nID := int(u16(n, rec+6))
		if pID != platformID || eID != encodingID || nID != nameID {
			continue
		}
		length := int(u16(n, rec+8))
		offset := int(u16(n, rec+10))
		raw := sub(n, stringOffset+offset, length)
		if len(raw) == 0 {
			continue
		}
		var s string
		if platformID == platformMicrosoft || platformID == platformUnicode {
			decoded, err := decodeUTF16(raw)
			if err != nil {
				continue
			}
			s = string(decoded)
		} else {
			s = string(raw)
		}
		if lID == languageID {
			return s
		}
		if fallback == "" {
			fallback = s
		}
	}
	return fallback
}

const usEnglishLanguageID = 0x0409

// FamilyName returns the font's family name (preferring the typographic
// family name, nameID 16, over the legacy nameID 1), or "" if absent.
func (f *Font) FamilyName() string {
	if s := f.nameRecordString(platformMicrosoft, msEncodingUnicodeBMP, usEnglishLanguageID, nameIDPreferredFam); s != "" {
		return s
	}
	return f.nameRecordString(platformMicrosoft, msEncodingUnicodeBMP, usEnglishLanguageID, nameIDFamily)
}

// SubfamilyName returns the font's subfamily (style) name, preferring
// the typographic subfamily name (nameID 17) over the legacy nameID 2.
func (f *Font) SubfamilyName() string {
	if s := f.nameRecordString(platformMicrosoft, msEncodingUnicodeBMP, usEnglishLanguageID, nameIDPreferredSub); s != "" {
		return s
	}
	return f.nameRecordString(platformMicrosoft, msEncodingUnicodeBMP, usEnglishLanguageID, nameIDSubfamily)
}

// FullName returns the font's full name (nameID 4), or "" if absent.
func (f *Font) FullName() string {
	return f.nameRecordString(platformMicrosoft, msEncodingUnicodeBMP, usEnglishLanguageID, nameIDFullName)
}

// FindMatchingFont scans every font within a (possibly TTC) buffer for
// one whose family name matches name, case-insensitively, and whose
// bold/italic style flags (from the OS/2 table's fsSelection, falling
// back to the subfamily name text when OS/2 is absent) match the
// requested flags exactly. It returns the matching font's starting
// offset usable with Init, or -1 if none match, per spec.md section
// 4.K.
func FindMatchingFont(buf []byte, name string, bold, italic bool) int {
	n := NumberOfFonts(buf)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		offset := FontOffsetForIndex(buf, i)
		if offset < 0 {
			continue
		}
		f, err := Init(buf, offset)
		if err != nil {
			continue
		}
		if !strings.EqualFold(f.FamilyName(), name) {
			continue
		}
		fb, fi := f.styleFlags()
		if fb == bold && fi == italic {
			return offset
		}
	}
	return -1
}

// styleFlags reports the font's bold/italic flags, from OS/2's
// fsSelection when present, else parsed out of the subfamily name text.
func (f *Font) styleFlags() (bold, italic bool) {
	os2 := f.os2.bytes(f.data)
	if len(os2) >= 64 {
		fsSelection := u16(os2, 62)
		return fsSelection&0x20 != 0, fsSelection&0x01 != 0
	}
	sub := strings.ToLower(f.SubfamilyName())
	return strings.Contains(sub, "bold"), strings.Contains(sub, "italic") || strings.Contains(sub, "oblique")
}
