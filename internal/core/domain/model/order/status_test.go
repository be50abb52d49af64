package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		name          string
		from          order.Status
		to            order.Status
		want          order.Status
		wantErrorKind error
	}{
		{"pending to completed", order.Pending, order.Completed, order.Completed, nil},
		{"pending to canceled", order.Pending, order.Canceled, order.Canceled, nil},
		{"pending to pending", order.Pending, order.Pending, order.Unknown, errs.ErrValueIsInvalid},
		{"completed to canceled", order.Completed, order.Canceled, order.Unknown, errs.ErrStatusTransitionIsInvalid},
		{"canceled to completed", order.Canceled, order.Completed, order.Unknown, errs.ErrStatusTransitionIsInvalid},
		{"completed to pending", order.Completed, order.Pending, order.Unknown, errs.ErrStatusTransitionIsInvalid},
		{"unknown target", order.Pending, order.Status(42), order.Unknown, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)

			if tt.wantErrorKind != nil {
				require.ErrorIs(t, err, tt.wantErrorKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_CompleteAndCancel(t *testing.T) {
	s, err := order.Pending.Complete()
	require.NoError(t, err)
	assert.Equal(t, order.Completed, s)

	s, err = order.Pending.Cancel()
	require.NoError(t, err)
	assert.Equal(t, order.Canceled, s)

	_, err = order.Completed.Cancel()
	assert.True(t, errs.IsInvalidTransition(err))
}

func TestStatus_ParseAndString(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Completed, order.Canceled} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := order.ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, order.Completed, parsed)

	_, err = order.ParseStatus("PENDDING")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	require.Error(t, order.Unknown.Validate())
	assert.True(t, order.Completed.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
}

func TestShippingStatus(t *testing.T) {
	var zero order.ShippingStatus
	assert.Equal(t, order.ShippingPending, zero)
	require.NoError(t, zero.Validate())

	s, err := order.ParseShippingStatus("COMPLETE")
	require.NoError(t, err)
	assert.Equal(t, order.ShippingComplete, s)

	_, err = order.ParseShippingStatus("SHIPPED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, order.ShippingStatus(7).Validate())
	assert.Equal(t, "CANCEL", order.ShippingCancel.String())
}
