// Package calc implements the RPN calculator core: the operand stack, the
// operator registry, and the dispatch engine that applies operations to
// the stack atomically.
//
// Operators come from three backends behind one contract:
//   - Native Go functions, the fixed built-in set seeded by NewRegistry.
//   - Lua functions a startup script declares through a host-provided
//     register(name, arity, fn) callback (LoadLua).
//   - Array-language functions bound at the top level of a source file,
//     whose declared stack signatures supply their arities (LoadArray).
//
// Names are case-insensitive and later registrations shadow earlier ones,
// so scripts may override built-ins. Dispatch is all-or-nothing: an
// operation either replaces exactly its arity in operands with its
// results, or leaves the stack untouched.
//
// Nothing in this package is safe for concurrent use; a single event loop
// is expected to own the Calculator and its Registry.
package calc
