package syntax

// Render reproduces source text for the tree rooted at root, using content as
// the text the parsed nodes were taken from.
//
// Parsed nodes print their own bytes, with the text between children (trivia,
// punctuation, comments) copied from content. Synthetic nodes print their
// structure. Rendering an unmodified tree yields content byte-for-byte.
func Render(content []byte, root *Node) []byte {
	if root == nil {
		return append([]byte(nil), content...)
	}

	out := make([]byte, 0, len(content)+64)
	start, end := clampSpan(root.Span, len(content))
	out = append(out, content[:start]...)
	out = appendNode(out, content, root)
	out = append(out, content[end:]...)
	return out
}

// RenderUnit renders root against the unit's content.
func RenderUnit(u *Unit, root *Node) []byte {
	return Render(u.Content, root)
}

func renderNode(content []byte, n *Node) []byte {
	return appendNode(nil, content, n)
}

func appendNode(out, content []byte, n *Node) []byte {
	if n.Synthetic {
		switch n.Kind {
		case NodeBinary:
			out = appendNode(out, content, n.Left())
			out = append(out, ' ')
			out = append(out, n.Value...)
			out = append(out, ' ')
			return appendNode(out, content, n.Right())
		case NodeParenthesized:
			out = append(out, '(')
			out = appendNode(out, content, n.Expression())
			return append(out, ')')
		default:
			if len(n.Children) == 0 {
				return append(out, n.Value...)
			}
		}
	}

	start, end := clampSpan(n.Span, len(content))
	if len(n.Children) == 0 {
		if start == end && n.Value != "" {
			return append(out, n.Value...)
		}
		return append(out, content[start:end]...)
	}

	pos := start
	for _, c := range n.Children {
		cs, ce := clampSpan(c.Span, len(content))
		if cs > pos {
			out = append(out, content[pos:cs]...)
		}
		out = appendNode(out, content, c)
		if ce > pos {
			pos = ce
		}
	}
	if end > pos {
		out = append(out, content[pos:end]...)
	}
	return out
}

func clampSpan(s Span, n int) (int, int) {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
