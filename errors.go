// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// A FormatError reports that the input is not a valid TrueType/OpenType
// font, or that a table inside it is internally inconsistent.
type FormatError string

func (e FormatError) Error() string {
	return "struetype: invalid font format: " + string(e)
}

// An UnsupportedError reports that the input uses a valid but
// unimplemented font feature. Operations that hit an UnsupportedError
// never abort the whole font: they return "not found" / empty / zero to
// the caller for that one query, per the error-handling design in
// spec.md section 7.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return "struetype: unsupported font feature: " + string(e)
}
