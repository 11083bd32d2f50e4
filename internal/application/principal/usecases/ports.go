// Package usecases contains the principal use cases
package usecases

import "context"

// TransactionManager runs a function inside a database transaction carried
// through the context.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
