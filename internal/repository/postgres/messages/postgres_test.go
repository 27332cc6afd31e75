package messages

import (
	"context"
	"testing"

	"bookkeeping-app-go/internal/db/dbtest"
	messagesdomain "bookkeeping-app-go/internal/domain/messages"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForUserIncludesBothDirections(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	repo := NewPostgres(gdb)
	ctx := context.Background()

	client := userdomain.User{Email: "c@example.com", PasswordHash: "h", Role: userdomain.RoleClient, Name: "Client"}
	keeper := userdomain.User{Email: "k@example.com", PasswordHash: "h", Role: userdomain.RoleBookkeeper, Name: "Keeper"}
	other := userdomain.User{Email: "o@example.com", PasswordHash: "h", Role: userdomain.RoleClient, Name: "Other"}
	require.NoError(t, gdb.Create(&client).Error)
	require.NoError(t, gdb.Create(&keeper).Error)
	require.NoError(t, gdb.Create(&other).Error)

	require.NoError(t, repo.Create(ctx, &messagesdomain.Message{SenderID: client.ID, ReceiverID: keeper.ID, Message: "hello"}))
	require.NoError(t, repo.Create(ctx, &messagesdomain.Message{SenderID: keeper.ID, ReceiverID: client.ID, Message: "hi back"}))
	require.NoError(t, repo.Create(ctx, &messagesdomain.Message{SenderID: other.ID, ReceiverID: keeper.ID, Message: "unrelated"}))

	threads, err := repo.ListForUser(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, "hello", threads[0].Message)
	assert.Equal(t, "Client", threads[0].SenderName)
	assert.Equal(t, "Keeper", threads[1].SenderName)
	assert.Equal(t, userdomain.RoleBookkeeper, threads[1].SenderRole)
}

func TestCreateWithMissingReceiverMapsToUserNotFound(t *testing.T) {
	gdb := dbtest.NewSQLite(t)
	repo := NewPostgres(gdb)

	sender := userdomain.User{Email: "c@example.com", PasswordHash: "h", Role: userdomain.RoleClient, Name: "Client"}
	require.NoError(t, gdb.Create(&sender).Error)

	err := repo.Create(context.Background(), &messagesdomain.Message{SenderID: sender.ID, ReceiverID: 999, Message: "hello"})
	assert.ErrorIs(t, err, messagesdomain.ErrUserNotFound)
}
