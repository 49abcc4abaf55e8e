// Package ua implements a small postfix array language. Source is
// line-oriented, with the following constructs:
//   - Top-level bindings via `name ← |n body` (a plain `=` also works),
//     where the |n signature declares how many stack values the body
//     consumes when called by a host.
//   - Number literals, including negative and exponent forms (1.5e3).
//   - Array literals via `[ ... ]`, collecting every value the bracketed
//     expression leaves on the stack; arrays are rank 1 and do not nest.
//   - Pervasive arithmetic words (+, -, *, /, pow, mod, min, max, neg,
//     sqrt, ...) that broadcast between scalars and arrays.
//   - Stack words (dup, drop, swap, over, rot) and array words (len, rev,
//     iota, sum, prod, mean).
//
// Comments beginning with `#` run to end of line. The interpreter enforces
// a step quota and a recursion limit, rejecting definitions that would
// otherwise run away.
package ua
