package users_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/programme-lv/contest/users"
	"github.com/stretchr/testify/require"
)

type usernameSrcMock struct {
	calls        atomic.Int32
	getUsernames func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

func (m *usernameSrcMock) GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	m.calls.Add(1)
	return m.getUsernames(ctx, ids)
}

func TestCachedUsernamesHitsSourceOnce(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	src := &usernameSrcMock{getUsernames: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
		all := map[uuid.UUID]string{alice: "alice", bob: "bob"}
		res := map[uuid.UUID]string{}
		for _, id := range ids {
			if n, ok := all[id]; ok {
				res[id] = n
			}
		}
		return res, nil
	}}
	c := users.NewCachedUsernames(src, time.Minute)

	got, err := c.GetUsernames(context.Background(), []uuid.UUID{alice, bob})
	require.NoError(t, err)
	require.Equal(t, map[uuid.UUID]string{alice: "alice", bob: "bob"}, got)

	got, err = c.GetUsernames(context.Background(), []uuid.UUID{bob})
	require.NoError(t, err)
	require.Equal(t, map[uuid.UUID]string{bob: "bob"}, got)
	require.EqualValues(t, 1, src.calls.Load())
}

func TestCachedUsernamesPropagatesErrors(t *testing.T) {
	src := &usernameSrcMock{getUsernames: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
		return nil, errors.New("db down")
	}}
	c := users.NewCachedUsernames(src, time.Minute)

	_, err := c.GetUsernames(context.Background(), []uuid.UUID{uuid.New()})
	require.ErrorContains(t, err, "db down")
}
