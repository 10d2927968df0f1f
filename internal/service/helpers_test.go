package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"team-project-api/internal/repository/mocks"
)

// passthroughTx 返回一个直接执行回调的 Transactor mock
func passthroughTx(t *testing.T) *mocks.Transactor {
	tx := mocks.NewTransactor(t)
	tx.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		Maybe()
	return tx
}

func strPtr(s string) *string { return &s }
