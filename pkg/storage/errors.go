package storage

import "github.com/samhab/hslu-devops-evaluation/pkg/serrors"

// Transaction misuse kinds returned by storage implementations.
var (
	// ErrAlreadyInTx is returned by Begin on a handle that is already a transaction.
	ErrAlreadyInTx = serrors.NewKind("ALREADY_IN_TX")
	// ErrNotInTx is returned by Commit and Rollback outside of a transaction.
	ErrNotInTx = serrors.NewKind("NOT_IN_TX")
)

// ErrDisabled is returned by callers that need the result store while it is
// switched off in the configuration.
var ErrDisabled = serrors.With(serrors.ErrMissingConfig, "database is not enabled, set DATABASE_ENABLED=true")
