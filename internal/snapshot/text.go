package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteText renders the scope tree, one binding per line, with names padded
// to a common display width so descriptions line up even for wide runes.
func WriteText(w io.Writer, s *Snapshot) error {
	bw := bufio.NewWriter(w)
	byID := make(map[uint32]*Entry, len(s.Decls))
	for i := range s.Decls {
		byID[s.Decls[i].ID] = &s.Decls[i]
	}
	scopes := make(map[uint32]*Scope, len(s.Scopes))
	children := make(map[uint32][]uint32, len(s.Scopes))
	var roots []uint32
	for i := range s.Scopes {
		sc := &s.Scopes[i]
		scopes[sc.ID] = sc
		if sc.Parent == 0 {
			roots = append(roots, sc.ID)
		} else {
			children[sc.Parent] = append(children[sc.Parent], sc.ID)
		}
	}

	var walk func(id uint32, depth int)
	walk = func(id uint32, depth int) {
		sc := scopes[id]
		indent := strings.Repeat("  ", depth)
		title := sc.Kind
		if owner := byID[sc.Owner]; owner != nil {
			title += " " + owner.Name
		}
		fmt.Fprintf(bw, "%sscope #%d %s\n", indent, sc.ID, title)

		width := 0
		for _, b := range sc.Bindings {
			width = max(width, runewidth.StringWidth(b.Name))
		}
		for _, b := range sc.Bindings {
			for _, did := range b.Decls {
				e := byID[did]
				if e == nil {
					continue
				}
				fmt.Fprintf(bw, "%s  %s  %s\n", indent, runewidth.FillRight(b.Name, width), e.Description)
			}
		}
		for _, child := range children[id] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return bw.Flush()
}
