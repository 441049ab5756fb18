// Package manifest reads declaration files.
//
// A declaration file is TOML (see the [[module]] tables decoded by Decode)
// describing modules and the types, constants, callables and generics they
// declare. Decoding produces unresolved declarations: type names stay
// strings and bodies are stored as opaque statement and expression handles
// in an ast.Builder. Resolution is the job of the declaration pass.
package manifest
