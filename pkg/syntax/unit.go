// Package syntax provides a language-neutral, immutable syntax tree for
// source units together with the helpers analyzers and rewriters share:
// traversal, position mapping, back-references, and lossless rendering.
package syntax

import "sort"

// LineInfo records the byte offsets of one source line.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the offset just past the line terminator.
	EndOffset int
}

// Unit is one parsed source file.
type Unit struct {
	// Path is the logical file path, used for diagnostics only.
	Path string

	// Content is the source the tree was parsed from. It must not be mutated.
	Content []byte

	// Lines indexes Content by line.
	Lines []LineInfo

	// Root is the tree root.
	Root *Node

	// HasErrors is true when the parser recovered from syntax errors.
	HasErrors bool
}

// NewUnit creates a unit with line metadata computed from content.
func NewUnit(path string, content []byte, root *Node) *Unit {
	return &Unit{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    root,
	}
}

// BuildLines constructs line metadata from content, accepting LF and CRLF endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Columns count bytes. Returns (0, 0) if the offset is out of range.
func (u *Unit) LineAt(offset int) (int, int) {
	if offset < 0 || len(u.Lines) == 0 || offset > len(u.Content) {
		return 0, 0
	}

	if offset == len(u.Content) {
		last := u.Lines[len(u.Lines)-1]
		return len(u.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(u.Lines), func(i int) bool {
		return u.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(u.Lines) {
		lineIdx = len(u.Lines) - 1
	}

	info := u.Lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - info.StartOffset + 1
}

// LineContent returns a 1-based line without its terminator, or nil if out of range.
func (u *Unit) LineContent(line int) []byte {
	if line < 1 || line > len(u.Lines) {
		return nil
	}
	info := u.Lines[line-1]
	return u.Content[info.StartOffset:info.NewlineStart]
}

// Text returns the source text covered by n. Synthetic nodes are rendered.
func (u *Unit) Text(n *Node) string {
	if n == nil {
		return ""
	}
	if !n.Synthetic && n.Span.Valid(len(u.Content)) && !containsSynthetic(n) {
		return string(u.Content[n.Span.Start:n.Span.End])
	}
	return string(renderNode(u.Content, n))
}

// InBounds reports whether span addresses bytes of this unit.
func (u *Unit) InBounds(span Span) bool {
	return span.Valid(len(u.Content))
}

func containsSynthetic(n *Node) bool {
	return FindFirst(n, func(c *Node) bool { return c.Synthetic }) != nil
}
