package convert

import (
	"log/slog"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"github.com/dgallion1/doc2xhtml/internal/markup"
)

// outlineWriter renders a bookmark tree as nested lists. Outline trees come
// from untrusted containers, so a node reached twice is skipped.
type outlineWriter struct {
	sink    *markup.Sink
	log     *slog.Logger
	visited map[*doctree.OutlineNode]struct{}
}

func writeOutline(s *markup.Sink, root *doctree.OutlineNode, log *slog.Logger) error {
	if root == nil {
		return nil
	}
	w := &outlineWriter{
		sink:    s,
		log:     log,
		visited: map[*doctree.OutlineNode]struct{}{root: {}},
	}
	return w.children(root)
}

func (w *outlineWriter) children(node *doctree.OutlineNode) error {
	kids := w.unvisited(node.Children)
	if len(kids) == 0 {
		return nil
	}
	if err := w.sink.Open("ul"); err != nil {
		return err
	}
	for _, child := range kids {
		if err := w.sink.Open("li"); err != nil {
			return err
		}
		if err := w.sink.Characters(child.Title); err != nil {
			return err
		}
		if err := w.children(child); err != nil {
			return err
		}
		if err := w.sink.Close("li"); err != nil {
			return err
		}
	}
	return w.sink.Close("ul")
}

// unvisited marks and returns the children not seen before.
func (w *outlineWriter) unvisited(nodes []*doctree.OutlineNode) []*doctree.OutlineNode {
	out := make([]*doctree.OutlineNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, seen := w.visited[n]; seen {
			w.log.Debug("outline node revisited, skipping", "title", n.Title)
			continue
		}
		w.visited[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
