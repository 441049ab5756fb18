package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"declc/internal/ast"
	"declc/internal/diag"
	"declc/internal/source"
)

// parsed is the result of the I/O-free half of decoding, safe to compute on
// any goroutine.
type parsed struct {
	raw       rawFile
	undecoded []string
	err       error
}

func parse(content []byte) parsed {
	var p parsed
	meta, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&p.raw)
	if err != nil {
		p.err = err
		return p
	}
	for _, key := range meta.Undecoded() {
		p.undecoded = append(p.undecoded, key.String())
	}
	return p
}

// Decode turns the content of one declaration file into unresolved
// declarations. Bodies and constant expressions are allocated in b. Problems
// are reported through r; a file that fails to parse yields no modules.
func Decode(fileID source.FileID, path string, content []byte, b *ast.Builder, r diag.Reporter) *File {
	return convert(fileID, path, content, parse(content), b, r)
}

func convert(fileID source.FileID, path string, content []byte, p parsed, b *ast.Builder, r diag.Reporter) *File {
	f := &File{Path: path, FileID: fileID}
	loc := locator{file: fileID, content: content}
	if p.err != nil {
		diag.ReportError(r, diag.ManifestDecode, loc.errorSpan(p.err),
			fmt.Sprintf("%s: failed to parse TOML: %v", path, p.err)).Emit()
		return f
	}
	for _, key := range p.undecoded {
		diag.ReportWarning(r, diag.ManifestDecode, loc.keySpan(key),
			fmt.Sprintf("%s: unknown key %q", path, key)).Emit()
	}

	g := moduleDecoder{loc: loc, from: 0, end: len(content), table: "", builder: b, reporter: r, path: path}
	f.Global = g.module(p.raw.global(), source.Span{File: fileID})
	g.externalOnly(&f.Global)

	cursor := 0
	for i := range p.raw.Module {
		rm := &p.raw.Module[i]
		header := cursor
		if idx := bytes.Index(content[cursor:], moduleHeader); idx >= 0 {
			header = cursor + idx + len(moduleHeader)
		}
		var sp source.Span
		sp, cursor = loc.find(rm.Name, header)
		end := len(content)
		if idx := bytes.Index(content[cursor:], moduleHeader); idx >= 0 {
			end = cursor + idx
		}
		if strings.TrimSpace(rm.Name) == "" {
			diag.ReportError(r, diag.ManifestEmptyName, sp,
				fmt.Sprintf("%s: module #%d has no name", path, i+1)).Emit()
			continue
		}
		d := moduleDecoder{loc: loc, from: cursor, end: end, table: "module.", builder: b, reporter: r, path: path}
		f.Modules = append(f.Modules, d.module(rm, sp))
	}
	return f
}

var moduleHeader = []byte("[[module]]")

// moduleDecoder converts one [[module]] block, or the top-level entries
// when table is empty. Each entry is located by counting its
// [[<table><kind>]] headers inside [from, end), so repeated names such as
// overloads get their own spans.
type moduleDecoder struct {
	loc      locator
	from     int
	end      int
	table    string
	builder  *ast.Builder
	reporter diag.Reporter
	path     string
	headers  map[string]int // next search offset per entry kind
	names    map[string]int // next search offset per name, without headers
}

func (d *moduleDecoder) module(rm *rawModule, sp source.Span) Module {
	m := Module{Name: rm.Name, Span: sp}
	for _, rt := range rm.Type {
		if s, ok := d.named("type", rt.Name); ok {
			m.Types = append(m.Types, TypeDecl{Name: rt.Name, Extends: d.typeExpr(rt.Extends, s), Span: s})
		}
	}
	for _, ra := range rm.Alias {
		if s, ok := d.named("alias", ra.Name); ok {
			m.Aliases = append(m.Aliases, AliasDecl{Name: ra.Name, Type: d.typeExpr(ra.Type, s), Span: s})
		}
	}
	for _, rc := range rm.Const {
		if s, ok := d.named("const", rc.Name); ok {
			m.Consts = append(m.Consts, ConstDecl{
				Name: rc.Name,
				Type: d.typeExpr(rc.Type, s),
				Expr: d.builder.Exprs.New(s, rc.Expr),
				Span: s,
			})
		}
	}
	for _, re := range rm.ExternConst {
		if s, ok := d.named("extern_const", re.Name); ok {
			m.ExternConsts = append(m.ExternConsts, ExternConstDecl{
				Name:  re.Name,
				Type:  d.typeExpr(re.Type, s),
				Value: re.Value,
				Span:  s,
			})
		}
	}
	for _, group := range []struct {
		kind    ast.CallableKind
		entries []rawCallable
	}{
		{ast.CallableMacro, rm.Macro},
		{ast.CallableBuiltin, rm.Builtin},
		{ast.CallableRuntime, rm.Runtime},
	} {
		for i := range group.entries {
			rc := &group.entries[i]
			if s, ok := d.named(group.kind.String(), rc.Name); ok {
				m.Callables = append(m.Callables, d.callable(group.kind, rc, s))
			}
		}
	}
	for i := range rm.Generic {
		rg := &rm.Generic[i]
		s, ok := d.named("generic", rg.Name)
		if !ok {
			continue
		}
		kind, ok := genericKind(rg.Kind)
		if !ok {
			diag.ReportError(d.reporter, diag.ManifestDecode, s,
				fmt.Sprintf("%s: generic %q has unsupported kind %q", d.path, rg.Name, rg.Kind)).Emit()
			continue
		}
		decl := d.callable(kind, &rawCallable{
			Name:          rg.Name,
			Kind:          rg.BuiltinKind,
			Params:        rg.Params,
			VarArgs:       rg.VarArgs,
			Returns:       rg.Returns,
			Labels:        rg.Labels,
			Transitioning: rg.Transitioning,
			Body:          rg.Body,
		}, s)
		m.Generics = append(m.Generics, d.builder.NewGeneric(ast.GenericDecl{
			Span:       s,
			TypeParams: append([]string(nil), rg.TypeParams...),
			Callable:   decl,
		}))
	}
	for _, rs := range rm.Specialize {
		s, ok := d.named("specialize", rs.Generic)
		if !ok {
			continue
		}
		args := make([]ast.TypeExpr, 0, len(rs.Args))
		for _, a := range rs.Args {
			args = append(args, d.typeExpr(a, s))
		}
		m.Specializations = append(m.Specializations, SpecializeDecl{Generic: rs.Generic, Args: args, Span: s})
	}
	return m
}

func (d *moduleDecoder) named(what, name string) (source.Span, bool) {
	s := d.locate(what, name)
	if strings.TrimSpace(name) == "" {
		diag.ReportError(d.reporter, diag.ManifestEmptyName, s,
			fmt.Sprintf("%s: %s declaration has no name", d.path, what)).Emit()
		return s, false
	}
	return s, true
}

// locate finds the name of the next entry of kind. Without a matching
// header it falls back to the next occurrence of the name itself.
func (d *moduleDecoder) locate(kind, name string) source.Span {
	if d.headers == nil {
		d.headers = make(map[string]int)
		d.names = make(map[string]int)
	}
	header := []byte("[[" + d.table + kind + "]]")
	from, ok := d.headers[kind]
	if !ok {
		from = d.from
	}
	if idx := bytes.Index(d.loc.content[from:], header); idx >= 0 && from+idx < d.end {
		start := from + idx + len(header)
		d.headers[kind] = start
		if s, _ := d.loc.find(name, start); !s.Empty() {
			return s
		}
	}
	from, ok = d.names[name]
	if !ok {
		from = d.from
	}
	s, next := d.loc.find(name, from)
	if !s.Empty() {
		d.names[name] = next
	}
	return s
}

// typeExpr locates a type name after the declaration it belongs to.
func (d *moduleDecoder) typeExpr(name string, decl source.Span) ast.TypeExpr {
	name = strings.TrimSpace(name)
	if name == "" {
		return ast.TypeExpr{}
	}
	s, _ := d.loc.find(name, int(decl.End))
	if s.Empty() || int(s.Start) >= d.end {
		s = decl
	}
	return ast.TypeExpr{Name: name, Span: s}
}

// externalOnly drops top-level callables and generics that carry a body:
// outlines are written per module, so a global body would have nowhere to go.
func (d *moduleDecoder) externalOnly(m *Module) {
	kept := m.Callables[:0]
	for _, cd := range m.Callables {
		if cd.Body.IsValid() {
			d.topLevelBody(cd.Kind.String(), cd.Name, cd.Span)
			continue
		}
		kept = append(kept, cd)
	}
	m.Callables = kept
	generics := m.Generics[:0]
	for _, gd := range m.Generics {
		if gd.Callable.Body.IsValid() {
			d.topLevelBody("generic", gd.Callable.Name, gd.Span)
			continue
		}
		generics = append(generics, gd)
	}
	m.Generics = generics
}

func (d *moduleDecoder) topLevelBody(what, name string, at source.Span) {
	diag.ReportError(d.reporter, diag.ManifestDecode, at,
		fmt.Sprintf("%s: top-level %s %q cannot have a body; declare it inside a [[module]]", d.path, what, name)).Emit()
}

func (d *moduleDecoder) callable(kind ast.CallableKind, rc *rawCallable, s source.Span) ast.CallableDecl {
	decl := ast.CallableDecl{
		Kind:          kind,
		Name:          rc.Name,
		Span:          s,
		VarArgs:       rc.VarArgs,
		Return:        d.typeExpr(rc.Returns, s),
		Transitioning: rc.Transitioning,
		BuiltinKind:   rc.Kind,
	}
	for _, p := range rc.Params {
		decl.Params = append(decl.Params, ast.Param{Name: p.Name, Type: d.typeExpr(p.Type, s)})
	}
	for _, l := range rc.Labels {
		label := ast.LabelDecl{Name: l.Name}
		for _, ty := range l.Types {
			label.Types = append(label.Types, d.typeExpr(ty, s))
		}
		decl.Labels = append(decl.Labels, label)
	}
	if rc.Body != nil && kind != ast.CallableRuntime {
		decl.Body = d.builder.Stmts.New(s, *rc.Body)
	}
	return decl
}

func genericKind(s string) (ast.CallableKind, bool) {
	switch s {
	case "", "macro":
		return ast.CallableMacro, true
	case "builtin":
		return ast.CallableBuiltin, true
	default:
		return ast.CallableMacro, false
	}
}

// locator maps declared names back to byte ranges of the file content.
type locator struct {
	file    source.FileID
	content []byte
}

// find returns the span of the first quoted occurrence of value at or after
// from, and the offset just past it. Unknown values yield an empty span at
// from.
func (l locator) find(value string, from int) (source.Span, int) {
	if from > len(l.content) {
		from = len(l.content)
	}
	if value != "" {
		quoted := []byte(strconv.Quote(value))
		if idx := bytes.Index(l.content[from:], quoted); idx >= 0 {
			start := from + idx + 1
			end := start + len(quoted) - 2
			return l.span(start, end), end + 1
		}
	}
	return l.span(from, from), from
}

func (l locator) keySpan(key string) source.Span {
	last := key
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		last = key[i+1:]
	}
	if idx := bytes.Index(l.content, []byte(last)); idx >= 0 {
		return l.span(idx, idx+len(last))
	}
	return l.span(0, 0)
}

func (l locator) errorSpan(err error) source.Span {
	var perr toml.ParseError
	if errors.As(err, &perr) && perr.Position.Len > 0 {
		return l.span(perr.Position.Start, perr.Position.Start+perr.Position.Len)
	}
	return l.span(0, 0)
}

func (l locator) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		s = 0
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		e = s
	}
	return source.Span{File: l.file, Start: s, End: e}
}
