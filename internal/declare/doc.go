// Package declare is the declaration pass. It walks decoded declaration
// files, keeps the ambient scope and position of a decl.Context in step with
// the construct being processed, and builds the decl.Table every later phase
// reads.
//
// The pass runs in four steps:
//
//  1. the prelude binds the builtin primitive types in the global scope;
//  2. abstract types of every module are declared, so later declarations
//     can name types from any file;
//  3. aliases, constants, callables and generics are declared, reopening
//     modules that appear in several blocks;
//  4. explicit specialization requests are instantiated through the generic
//     cache.
//
// Outline then renders each module's header and source buffers and freezes
// them.
package declare
