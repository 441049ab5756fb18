// Package diag defines the diagnostic model shared by the declaration pass
// and its drivers.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form, a short Message, the Primary span and optional Notes.
//
// Producers emit through a Reporter, either directly or with a ReportBuilder
// (ReportError/ReportWarning/ReportInfo, chained WithNote, then Emit).
// BagReporter collects into a Bag, which supports capping, sorting and
// deduplication. Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt.
//
// Only recoverable, user-facing problems become diagnostics. Broken internal
// contracts are invariant violations and panic instead (see decl.InvariantError).
package diag
