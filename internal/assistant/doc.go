// Package assistant provides the foundational types for the scoped persona
// store: the assistant record, the enumerated assistant type, the scoped
// identifier, the error taxonomy, and prompt assembly.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import assistant; assistant imports nothing internal.
// This ensures it remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - The assistant type round-trips through an explicit mapping table,
//     never through string casing.
//   - ScopedID is a tagged union (scope + local id) with a total
//     String/Parse inversion over the fixed scope vocabulary.
//   - Persona names are NFC-normalized before they reach a store, so
//     byte-different encodings of the same name cannot bypass the
//     uniqueness constraint.
//   - All JSON tags use snake_case.
package assistant
