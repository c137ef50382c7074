package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessEnsure(t *testing.T) {
	ctx := context.Background()

	for _, status := range []AccessStatus{AccessAuthorized, AccessFullAccess, AccessWriteOnly} {
		granted, err := Access{Status: status}.Ensure(ctx)
		assert.NoError(t, err, status)
		assert.True(t, granted, status)
	}

	for _, status := range []AccessStatus{AccessDenied, AccessRestricted, AccessStatus("bogus")} {
		granted, err := Access{Status: status}.Ensure(ctx)
		assert.ErrorIs(t, err, ErrUnauthorized, status)
		assert.False(t, granted, status)
	}
}

func TestAccessNotDetermined(t *testing.T) {
	ctx := context.Background()

	asked := 0
	granted, err := Access{Status: AccessNotDetermined, Request: func(context.Context) (bool, error) {
		asked++
		return true, nil
	}}.Ensure(ctx)
	assert.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, asked)

	granted, err = Access{Status: AccessNotDetermined}.Ensure(ctx)
	assert.NoError(t, err)
	assert.False(t, granted)

	boom := errors.New("prompt dismissed")
	_, err = Access{Status: AccessNotDetermined, Request: func(context.Context) (bool, error) {
		return false, boom
	}}.Ensure(ctx)
	assert.ErrorIs(t, err, boom)
}
