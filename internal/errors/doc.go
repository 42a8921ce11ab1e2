// Package errors provides coded, actionable errors for statectx.
//
// Each error carries a stable code (e.g., "S001") that maps to a category,
// a short message, and a longer explanation. Callers add a suggestion or
// wrap the underlying cause:
//
//	err := errors.New(errors.CodeUnknownAction).
//	    WithDetail(`no action named "incremnt"`).
//	    WithSuggestion("Check the keys returned by the schema's action factory")
//
// Errors with the same code match under errors.Is, so the exported
// sentinels can be compared directly:
//
//	if stderrors.Is(err, errors.ErrUnknownAction) { ... }
package errors
