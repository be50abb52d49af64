package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOutboxMocks() (*MockOutboxUoWFactory, *MockOutboxUoW, *MockOutboxRepository) {
	repo := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func TestPublishOutboxCommandHandler_Handle_PublishesAndMarksSent(t *testing.T) {
	ctx := t.Context()
	messages := []ports.OutboxMessage{
		{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID(), EventName: "order.created", Payload: []byte(`{}`)},
		{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID(), EventName: "order.deleted", Payload: []byte(`{}`)},
	}
	cmd, err := commands.NewPublishOutboxCommand(50)
	require.NoError(t, err)

	factory, uow, repo := newOutboxMocks()
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(repo).Once(),
		repo.On("FetchPending", ctx, 50).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages).Return(nil).Once(),
		repo.On("MarkSent", ctx, []kernel.UUID{messages[0].ID, messages[1].ID}, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewPublishOutboxCommandHandler(factory, publisher)
	published, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, published)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)

	factory, uow, repo := newOutboxMocks()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(repo).Once()
	repo.On("FetchPending", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewPublishOutboxCommandHandler(factory, publisher)
	published, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, published)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublishOutboxCommandHandler_Handle_PublishFailureKeepsMessagesPending(t *testing.T) {
	ctx := t.Context()
	messages := []ports.OutboxMessage{
		{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID(), EventName: "order.created", OccurredAt: time.Now()},
	}
	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)

	brokerErr := errors.New("leader not available")
	factory, uow, repo := newOutboxMocks()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(repo).Once()
	repo.On("FetchPending", ctx, 10).Return(messages, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, messages).Return(brokerErr).Once()

	h := commands.NewPublishOutboxCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, brokerErr)

	repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
