// Package errs provides the typed errors shared by the ordering service.
//
// Every error kind follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details (ParamName, Cause, ...)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// The kinds map onto the failure classes of the order manager:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - not found: ObjectNotFoundError
//   - invalid transition: StatusTransitionIsInvalidError
//   - persistence: PersistenceError
//
// The HTTP adapter classifies errors with the Is* helpers instead of
// matching on concrete types.
package errs
