package decl

import (
	"strings"
)

// Module is a compilation unit: a scope plus the header and source text
// produced for it.
type Module struct {
	header
	name      string
	scope     ScopeID
	headerOut TextSink
	sourceOut TextSink
}

func (m *Module) Name() string { return m.name }

// Scope is the module's body scope.
func (m *Module) Scope() ScopeID { return m.scope }

// HeaderStream is the write handle of the header buffer.
func (m *Module) HeaderStream() *TextSink { return &m.headerOut }

// SourceStream is the write handle of the source buffer.
func (m *Module) SourceStream() *TextSink { return &m.sourceOut }

// Header returns the header text written so far.
func (m *Module) Header() string { return m.headerOut.String() }

// Source returns the source text written so far.
func (m *Module) Source() string { return m.sourceOut.String() }

// Finalize freezes both buffers.
func (m *Module) Finalize() {
	m.headerOut.Finalize()
	m.sourceOut.Finalize()
}

// TextSink is an append-only text buffer. After Finalize every write fails
// with ErrSinkFinalized and the content never changes again.
type TextSink struct {
	buf       strings.Builder
	finalized bool
}

func (s *TextSink) Write(p []byte) (int, error) {
	if s.finalized {
		return 0, ErrSinkFinalized
	}
	return s.buf.Write(p)
}

func (s *TextSink) WriteString(str string) (int, error) {
	if s.finalized {
		return 0, ErrSinkFinalized
	}
	return s.buf.WriteString(str)
}

func (s *TextSink) String() string { return s.buf.String() }

func (s *TextSink) Finalize() { s.finalized = true }

func (s *TextSink) Finalized() bool { return s.finalized }
