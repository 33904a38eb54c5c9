// Package transact holds the ledger-facing half of every state-changing call:
// gas-price policy, confirmation waits bounded by a timeout, event extraction
// from receipts and the error taxonomy shared by the deployer and the
// registry client.
//
// The pattern used throughout the module is
//
//	opts, err := policy.Apply(ctx, auth, backend)   // price the call
//	tx, err := contract.SomeMethod(opts, ...)       // submit
//	receipt, err := confirmer.Confirm(ctx, backend, tx)
//	event, err := transact.FindEvent(receipt, contractAddr, parser)
//
// Errors are classified with Classify and can be matched with errors.Is
// against ErrConnectivity, ErrInsufficientFunds, ErrSignerRejected,
// ErrExecutionReverted, ErrEventNotFound and ErrConfirmationTimeout.
// Nothing is retried.
package transact
