package service

import (
	"VirtualCard/internal/media"
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionEnv(t *testing.T) (*SubmissionService, *stubImageSaver, *stubVideoSaver, repo.InviteRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	invites := repo.NewInviteRepository(db)
	messages := repo.NewMessageRepository(db)
	images := &stubImageSaver{full: "2025/01/01/a.jpg", thumb: "2025/01/01/thumb_a.jpg"}
	videos := &stubVideoSaver{video: "2025/01/01/b.mp4", thumb: "2025/01/01/thumb_b.jpg"}
	return NewSubmissionService(invites, messages, images, videos), images, videos, invites, db
}

func addLink(t *testing.T, invites repo.InviteRepository, link *model.InviteLink) {
	t.Helper()
	require.NoError(t, invites.Create(context.Background(), link))
}

func linkUses(t *testing.T, invites repo.InviteRepository, tok string) int {
	t.Helper()
	link, err := invites.GetByToken(context.Background(), tok)
	require.NoError(t, err)
	require.NotNil(t, link)
	return link.UsesCount
}

func TestSubmissionService_Create(t *testing.T) {
	svc, _, _, invites, db := newSubmissionEnv(t)
	ctx := context.Background()

	two := 2
	addLink(t, invites, &model.InviteLink{Token: "tok", IsActive: true, MaxUses: &two})

	msg, err := svc.Create(ctx, Submission{
		Token:     "tok",
		Name:      "Sam, Jo",
		Content:   `<script>x</script>Hi <b>there</b>`,
		IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Equal(t, "Sam & Jo", msg.Name)
	assert.Equal(t, "SJ", msg.Initials)
	assert.Equal(t, model.StatusPending, msg.Status)
	assert.NotEmpty(t, msg.UUID)
	assert.Equal(t, ColorHint("Sam & Jo"), msg.ColorHint)

	// запрещённые теги вычищены, текст разрешённого содержимого сохранён
	assert.NotContains(t, msg.Content, "<script>")
	assert.NotContains(t, msg.Content, "<b>")
	assert.Contains(t, msg.Content, "there")

	// сообщение записано и использование токена учтено — вместе
	var saved model.Message
	require.NoError(t, db.Where("uuid = ?", msg.UUID).First(&saved).Error)
	assert.Equal(t, 1, linkUses(t, invites, "tok"))
}

func TestSubmissionService_TokenLifecycle(t *testing.T) {
	svc, _, _, invites, _ := newSubmissionEnv(t)
	ctx := context.Background()

	one := 1
	addLink(t, invites, &model.InviteLink{Token: "single", IsActive: true, MaxUses: &one})

	_, err := svc.Create(ctx, Submission{Token: "single", Name: "A", Content: "hi"})
	require.NoError(t, err)

	// вторая попытка по исчерпанному токену
	_, err = svc.Create(ctx, Submission{Token: "single", Name: "B", Content: "hi"})
	assert.ErrorIs(t, err, model.ErrTokenUseLimit)
	assert.Equal(t, 1, linkUses(t, invites, "single"))

	t.Run("expired", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Minute)
		addLink(t, invites, &model.InviteLink{Token: "late", IsActive: true, ExpiresAt: &past})
		_, err := svc.Create(ctx, Submission{Token: "late", Name: "A", Content: "hi"})
		assert.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("deactivated", func(t *testing.T) {
		addLink(t, invites, &model.InviteLink{Token: "off", IsActive: false})
		_, err := svc.Create(ctx, Submission{Token: "off", Name: "A", Content: "hi"})
		assert.ErrorIs(t, err, model.ErrTokenDeactivated)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Create(ctx, Submission{Token: "ghost", Name: "A", Content: "hi"})
		assert.ErrorIs(t, err, model.ErrTokenNotFound)
	})
}

func TestSubmissionService_ValidateTokenHasNoSideEffects(t *testing.T) {
	svc, _, _, invites, _ := newSubmissionEnv(t)
	ctx := context.Background()

	addLink(t, invites, &model.InviteLink{Token: "tok", IsActive: true})
	require.NoError(t, svc.ValidateToken(ctx, "tok"))
	require.NoError(t, svc.ValidateToken(ctx, "tok"))
	assert.Equal(t, 0, linkUses(t, invites, "tok"))
}

func TestSubmissionService_MediaBranches(t *testing.T) {
	ctx := context.Background()

	t.Run("image", func(t *testing.T) {
		svc, images, videos, invites, _ := newSubmissionEnv(t)
		addLink(t, invites, &model.InviteLink{Token: "tok", IsActive: true})

		msg, err := svc.Create(ctx, Submission{
			Token: "tok", Name: "A", Content: "hi",
			MediaData: []byte("img"), MediaFilename: "a.jpg", MediaType: model.MediaImage,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, images.calls)
		assert.Equal(t, 0, videos.calls)
		assert.Equal(t, "2025/01/01/a.jpg", msg.ImagePath)
		assert.Equal(t, "2025/01/01/thumb_a.jpg", msg.ThumbPath)
		assert.Empty(t, msg.VideoPath)
	})

	t.Run("video", func(t *testing.T) {
		svc, images, videos, invites, _ := newSubmissionEnv(t)
		addLink(t, invites, &model.InviteLink{Token: "tok", IsActive: true})

		msg, err := svc.Create(ctx, Submission{
			Token: "tok", Name: "A", Content: "hi",
			MediaData: []byte("vid"), MediaFilename: "b.mp4", MediaType: model.MediaVideo,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, images.calls)
		assert.Equal(t, 1, videos.calls)
		assert.Equal(t, "2025/01/01/b.mp4", msg.VideoPath)
		assert.Equal(t, "2025/01/01/thumb_b.jpg", msg.ThumbPath)
	})
}

func TestSubmissionService_MediaFailureAbortsWhole(t *testing.T) {
	svc, images, _, invites, db := newSubmissionEnv(t)
	ctx := context.Background()

	images.err = media.ErrUnsupportedType
	addLink(t, invites, &model.InviteLink{Token: "tok", IsActive: true})

	_, err := svc.Create(ctx, Submission{
		Token: "tok", Name: "A", Content: "hi",
		MediaData: []byte("bad"), MediaFilename: "a.jpg", MediaType: model.MediaImage,
	})
	assert.ErrorIs(t, err, media.ErrUnsupportedType)

	// ни сообщения, ни расхода токена
	var n int64
	require.NoError(t, db.Model(&model.Message{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, 0, linkUses(t, invites, "tok"))
}
