package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	strategy := Fixed(10 * time.Millisecond)
	dummyErr := errors.New("explosion")

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		ret, err := Do(context.Background(), 2, strategy, func() (int, error) {
			calls++
			return 1, nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, ret)
		require.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		ret, err := Do(context.Background(), 3, strategy, func() (int, error) {
			calls++
			if calls < 3 {
				return 0, dummyErr
			}
			return 7, nil
		})
		require.NoError(t, err)
		require.Equal(t, 7, ret)
		require.Equal(t, 3, calls)
	})

	t.Run("fails permanently after max attempts", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), 2, strategy, func() (int, error) {
			calls++
			return 0, dummyErr
		})
		require.Error(t, err)
		require.ErrorIs(t, err, dummyErr)
		var permErr *ErrFailedPermanently
		require.ErrorAs(t, err, &permErr)
		require.Equal(t, 2, calls)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		_, err := Do(ctx, 5, strategy, func() (int, error) {
			calls++
			return 0, dummyErr
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, calls)
	})

	t.Run("rejects zero attempts", func(t *testing.T) {
		_, err := Do(context.Background(), 0, strategy, func() (int, error) {
			return 0, nil
		})
		require.Error(t, err)
	})
}

func TestDo2(t *testing.T) {
	strategy := Fixed(time.Millisecond)
	a, b, err := Do2(context.Background(), 2, strategy, func() (int, string, error) {
		return 3, "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, a)
	require.Equal(t, "ok", b)
}
