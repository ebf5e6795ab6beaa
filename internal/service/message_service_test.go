package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModerationEnv(t *testing.T) (*MessageService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewMessageService(repo.NewMessageRepository(db)), db
}

func seedMessage(t *testing.T, db *gorm.DB, status string) *model.Message {
	t.Helper()
	msg := &model.Message{
		UUID:     "u-" + status + "-" + t.Name(),
		Name:     "Alice",
		Initials: "A",
		Content:  "hi",
		Status:   status,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestMessageService_ApproveFlow(t *testing.T) {
	svc, db := newModerationEnv(t)
	ctx := context.Background()
	msg := seedMessage(t, db, model.StatusPending)

	done, err := svc.Approve(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	assert.NotNil(t, got.ApprovedAt)

	// одобрение не из pending — отказ
	done, err = svc.Approve(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, done)

	// возврат в pending сбрасывает момент одобрения
	done, err = svc.Unapprove(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, done)

	got, err = svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Nil(t, got.ApprovedAt)
}

func TestMessageService_UnapproveOnlyFromApproved(t *testing.T) {
	svc, db := newModerationEnv(t)
	msg := seedMessage(t, db, model.StatusPending)

	done, err := svc.Unapprove(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMessageService_RejectFromAnyStatus(t *testing.T) {
	svc, db := newModerationEnv(t)
	ctx := context.Background()

	for _, status := range []string{model.StatusPending, model.StatusApproved} {
		msg := seedMessage(t, db, status)
		done, err := svc.Reject(ctx, msg.ID)
		require.NoError(t, err)
		assert.True(t, done)

		got, err := svc.Get(ctx, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, got.Status)
	}
}

func TestMessageService_UpdateRederivesNameFields(t *testing.T) {
	svc, db := newModerationEnv(t)
	ctx := context.Background()
	msg := seedMessage(t, db, model.StatusPending)

	name := "sam, jo"
	content := "<p>edited</p>"
	done, err := svc.Update(ctx, msg.ID, &name, &content)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam & jo", got.Name)
	assert.Equal(t, "SJ", got.Initials)
	assert.Equal(t, ColorHint("sam & jo"), got.ColorHint)
	assert.Equal(t, "<p>edited</p>", got.Content)
}

func TestMessageService_UpdateContentOnly(t *testing.T) {
	svc, db := newModerationEnv(t)
	ctx := context.Background()
	msg := seedMessage(t, db, model.StatusPending)
	before := msg.Initials

	content := "new text"
	done, err := svc.Update(ctx, msg.ID, nil, &content)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "new text", got.Content)
	assert.Equal(t, before, got.Initials, "initials must not change without a name edit")
}

func TestMessageService_DeleteIsPermanent(t *testing.T) {
	svc, db := newModerationEnv(t)
	ctx := context.Background()
	msg := seedMessage(t, db, model.StatusRejected)

	done, err := svc.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, done)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	done, err = svc.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMessageService_MissingMessage(t *testing.T) {
	svc, _ := newModerationEnv(t)
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context, int64) (bool, error){
		"approve":   svc.Approve,
		"reject":    svc.Reject,
		"unapprove": svc.Unapprove,
		"delete":    svc.Delete,
	} {
		done, err := fn(ctx, 99999)
		require.NoError(t, err, name)
		assert.False(t, done, name)
	}
}
