package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsck45/social-network-api/store"
)

type testEnv struct {
	users      *store.MemoryUserStore
	thoughts   *store.MemoryThoughtStore
	userSvc    *UserService
	thoughtSvc *ThoughtService
}

func newTestEnv() *testEnv {
	users := store.NewMemoryUserStore()
	thoughts := store.NewMemoryThoughtStore()
	return &testEnv{
		users:      users,
		thoughts:   thoughts,
		userSvc:    NewUserService(users, thoughts),
		thoughtSvc: NewThoughtService(thoughts, users),
	}
}

func (e *testEnv) createUser(t *testing.T, username, email string) *UserResponse {
	t.Helper()
	user, err := e.userSvc.CreateUser(context.Background(), CreateUserInput{Username: username, Email: email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createThought(t *testing.T, username, text string) *ThoughtResponse {
	t.Helper()
	thought, err := e.thoughtSvc.CreateThought(context.Background(), CreateThoughtInput{Username: username, ThoughtText: text})
	require.NoError(t, err)
	return thought
}
