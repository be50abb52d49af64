package commands

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const MaxOutboxBatchSize = 1000

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand drains at most BatchSize pending outbox messages.
type PublishOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize < 1 || batchSize > MaxOutboxBatchSize {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, MaxOutboxBatchSize)
	}

	return PublishOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}
