// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package struetype parses TrueType and OpenType font containers and
// rasterizes glyph outlines into anti-aliased coverage bitmaps or signed
// distance fields.
//
// A Font is initialized from a caller-supplied byte buffer holding a
// single font or a font collection (TTC). Every read from that buffer is
// bounds-checked, so a malformed or adversarial font yields empty glyphs
// and zero metrics rather than a fault. The package does no I/O and
// spawns no goroutines; a *Font is read-only after Init and safe to use
// concurrently from multiple goroutines.
package struetype
