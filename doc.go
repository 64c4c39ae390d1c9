// Package regcheck validates and normalizes user-registration payloads.
//
// A payload goes through two passes:
//
//   - Decode (structural): text -> untyped tree -> candidate User. Fails with
//     *MalformedInputError or *StructuralMismatchError.
//   - Check (rules): field-level and cross-field rules over the candidate.
//     Every violated rule is reported; there is no fail-fast mode.
//
// Both passes are pure and safe for concurrent use.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Transports (HTTP, CLI) live in middleware/ and cmd/regcheck and depend on this package, never the reverse.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	u, err := regcheck.ParseFrom(regcheck.JSONBytes(data))
//	if err != nil {
//	    report := regcheck.ReportOf(err)
//	    ...
//	}
//	out, err := regcheck.Canonical(u)
package regcheck
