package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardService_OnlyApprovedVisible(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardService(repo.NewMessageRepository(db), repo.NewCoverRepository(db))
	ctx := context.Background()

	seedMessage(t, db, model.StatusPending)
	seedMessage(t, db, model.StatusRejected)
	approved := seedMessage(t, db, model.StatusApproved)
	approved.ThumbPath = "2025/01/01/thumb_x.jpg"
	require.NoError(t, db.Save(approved).Error)

	msgs, err := svc.MessagesJSON(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	m := msgs[0]
	assert.Equal(t, approved.UUID, m["uuid"])
	assert.Equal(t, "/media/2025/01/01/thumb_x.jpg", m["thumb_url"])
	assert.Nil(t, m["image_url"], "absent media maps to null, not an empty URL")
	assert.NotContains(t, m, "id", "sequence number must stay internal")
	assert.NotContains(t, m, "ip_address")
}

func TestCardService_ActiveCover(t *testing.T) {
	db := newTestDB(t)
	covers := repo.NewCoverRepository(db)
	svc := NewCardService(repo.NewMessageRepository(db), covers)
	ctx := context.Background()

	got, err := svc.ActiveCover(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = covers.SetActive(ctx, "2025/01/01/c.jpg")
	require.NoError(t, err)

	got, err = svc.ActiveCover(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025/01/01/c.jpg", got.ImagePath)
}
