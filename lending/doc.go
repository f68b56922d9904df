// Package lending implements the lending service: the borrow/return state
// machine of the catalog plus the authorization predicates gating every
// operation.
//
// Authorization failures (missing role, unauthenticated caller) surface as
// distinct errors. Lending precondition failures (book missing, already
// borrowed, identity mismatch, user missing) deliberately collapse into one
// opaque "operation did not apply" outcome: a nil book with a nil error. The
// caller can not tell which precondition failed, so existence and ownership of
// books is not leaked to holders of the base role.
//
// Borrow and return are driven through the BookStore's conditional borrower
// swap, so two concurrent attempts on the same book resolve to exactly one
// success. The service never retries a lost race; it reports the same opaque
// outcome as any other failed precondition.
package lending
