// Copyright © 2021 Circonus, Inc. <support@circonus.com>
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dcos

import (
	"strings"
)

const (
	// PathSeparator delimits the levels of a metric path.
	PathSeparator = "/"

	// emptySegment stands in for an empty name. '~' is always escaped
	// in non-empty names, so it cannot collide with a real one.
	emptySegment = "~"

	upperhex = "0123456789ABCDEF"
)

// Path builds a metric path from its segments. Every segment is passed
// through EscapeSegment, so names taken from the document can never
// introduce an extra level or collide with another name.
func Path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = EscapeSegment(s)
	}
	return strings.Join(escaped, PathSeparator)
}

// EscapeSegment applies the metric path safe-character policy to one
// segment: [A-Za-z0-9._:-] are kept, any other byte is written as %XX
// and the empty string becomes "~".
func EscapeSegment(s string) string {
	if s == "" {
		return emptySegment
	}

	n := 0
	for i := 0; i < len(s); i++ {
		if !safeByte(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safeByte(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func safeByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '.', c == '_', c == ':', c == '-':
		return true
	}
	return false
}
