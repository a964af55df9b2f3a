package services_test

import (
	"context"
	"testing"

	"talenttrack-backend/internal/services"

	"github.com/stretchr/testify/require"
)

func TestSendAndThread(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := services.NewMessageService(repo)

	msg, err := svc.Send(context.Background(), "alice", "bob", "hello")
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "alice", msg.SenderID)
	require.Equal(t, "bob", msg.ReceiverID)
	require.False(t, msg.CreatedAt.IsZero())

	msgs, err := svc.Thread(context.Background(), "alice", "bob")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "hello", msgs[0].Text)
}

func TestThreadIsDirectionAgnostic(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := services.NewMessageService(repo)

	_, err := svc.Send(context.Background(), "alice", "bob", "one")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), "bob", "alice", "two")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), "alice", "bob", "three")
	require.NoError(t, err)
	// Unrelated conversation stays out of the thread.
	_, err = svc.Send(context.Background(), "alice", "carol", "other")
	require.NoError(t, err)

	fromAlice, err := svc.Thread(context.Background(), "alice", "bob")
	require.NoError(t, err)
	fromBob, err := svc.Thread(context.Background(), "bob", "alice")
	require.NoError(t, err)

	require.Len(t, fromAlice, 3)
	require.Equal(t, len(fromAlice), len(fromBob))
	for i := range fromAlice {
		require.Equal(t, fromAlice[i].ID, fromBob[i].ID)
	}

	// Oldest first.
	require.Equal(t, "one", fromAlice[0].Text)
	require.Equal(t, "two", fromAlice[1].Text)
	require.Equal(t, "three", fromAlice[2].Text)
	for i := 1; i < len(fromAlice); i++ {
		require.False(t, fromAlice[i].CreatedAt.Before(fromAlice[i-1].CreatedAt))
	}
}
