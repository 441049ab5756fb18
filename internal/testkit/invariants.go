// Package testkit holds structural checks shared by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"declc/internal/manifest"
	"declc/internal/source"
)

// CheckManifestSpans verifies the spans of a decoded declaration file:
//  1. every span belongs to sf and lies within its content
//  2. every declaration span covers exactly the declared name
//  3. declarations start after the name of their module
//  4. no two declarations share a span
func CheckManifestSpans(f *manifest.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil manifest or source file")
	}
	if f.FileID != sf.ID {
		return fmt.Errorf("manifest file id %d, source file id %d", f.FileID, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	check := func(what, name string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s %q: span file mismatch: got=%d want=%d", what, name, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("%s %q: empty span %v", what, name, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s %q: span end beyond content: %d > %d", what, name, sp.End, lenContent)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != name {
			return fmt.Errorf("%s %q: span covers %q", what, name, got)
		}
		return nil
	}

	if err := checkDecls(&f.Global, 0, check); err != nil {
		return err
	}
	for i := range f.Modules {
		m := &f.Modules[i]
		if err := check("module", m.Name, m.Span); err != nil {
			return err
		}
		if err := checkDecls(m, m.Span.End, check); err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
	}
	return nil
}

// checkDecls applies check to every declaration of m and requires each to
// start at or after offset after.
func checkDecls(m *manifest.Module, after uint32, check func(what, name string, sp source.Span) error) error {
	seen := make(map[uint32]string)
	visit := func(what, name string, sp source.Span) error {
		if err := check(what, name, sp); err != nil {
			return err
		}
		if sp.Start < after {
			return fmt.Errorf("%s %q: span %v precedes its module", what, name, sp)
		}
		if what != "specialize" {
			if prev, dup := seen[sp.Start]; dup {
				return fmt.Errorf("%s %q: span %v already used by %s", what, name, sp, prev)
			}
			seen[sp.Start] = what + " " + name
		}
		return nil
	}
	for _, d := range m.Types {
		if err := visit("type", d.Name, d.Span); err != nil {
			return err
		}
	}
	for _, d := range m.Aliases {
		if err := visit("alias", d.Name, d.Span); err != nil {
			return err
		}
	}
	for _, d := range m.Consts {
		if err := visit("const", d.Name, d.Span); err != nil {
			return err
		}
	}
	for _, d := range m.ExternConsts {
		if err := visit("extern const", d.Name, d.Span); err != nil {
			return err
		}
	}
	for i := range m.Callables {
		d := &m.Callables[i]
		if err := visit(d.Kind.String(), d.Name, d.Span); err != nil {
			return err
		}
	}
	for _, g := range m.Generics {
		if err := visit("generic", g.Callable.Name, g.Span); err != nil {
			return err
		}
	}
	for _, d := range m.Specializations {
		if err := visit("specialize", d.Generic, d.Span); err != nil {
			return err
		}
	}
	return nil
}
