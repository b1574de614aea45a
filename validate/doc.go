// Package validate checks proposed ledger mutations and reports problems per form field.
//
// Each entity kind has a Validator that inspects its input against the current ledger and
// returns FieldErrors, a mapping from field name to a single human-readable message. When
// several rules fail for the same field the last rule evaluated wins. Check turns the result into
// an *Error suitable for the error queue, and Edit applies the relaxed rules used while a form
// field is still being typed.
package validate
