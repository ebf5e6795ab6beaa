package handlers

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/model"
	"VirtualCard/internal/service"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DashboardHandler — админский сервис модерации.
type DashboardHandler struct {
	Router chi.Router

	messages *service.MessageService
	invites  *service.InviteLinkService
	covers   *service.CoverService
	settings *service.SettingsService
	logger   *zap.SugaredLogger
	config   *config.Config

	passwordHash []byte
}

// NewDashboardHandler собирает роутер дашборда. Все маршруты, кроме
// логина, требуют валидной admin-cookie.
func NewDashboardHandler(
	messages *service.MessageService,
	invites *service.InviteLinkService,
	covers *service.CoverService,
	settings *service.SettingsService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *DashboardHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalw("failed to hash admin password", "error", err)
	}

	h := &DashboardHandler{
		messages:     messages,
		invites:      invites,
		covers:       covers,
		settings:     settings,
		logger:       logger,
		config:       cfg,
		passwordHash: hash,
	}

	r := chi.NewRouter()
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)

		r.Get("/", h.Index)

		r.Get("/messages", h.AllMessages)
		r.Get("/messages/pending", h.PendingMessages)
		r.Get("/messages/approved", h.ApprovedMessages)
		r.Get("/messages/{id}", h.GetMessage)
		r.Post("/messages/{id}/approve", h.ApproveMessage)
		r.Post("/messages/{id}/reject", h.RejectMessage)
		r.Post("/messages/{id}/unapprove", h.UnapproveMessage)
		r.Post("/messages/{id}/edit", h.EditMessage)
		r.Post("/messages/{id}/delete", h.DeleteMessage)

		r.Get("/invite-links", h.ListInviteLinks)
		r.Post("/invite-links", h.CreateInviteLink)
		r.Post("/invite-links/{token}/deactivate", h.DeactivateInviteLink)

		r.Get("/cover", h.GetCover)
		r.Post("/cover", h.UploadCover)

		r.Get("/settings", h.GetSettings)
		r.Post("/settings", h.SetSettings)

		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaPath))))
	})

	h.Router = r
	return h
}

func (h *DashboardHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r.Context()) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login проверяет пароль администратора и выписывает admin-cookie.
func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		h.logger.Warnw("Login: wrong password", "ip", clientIP(r))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := middleware.SetAdminCookie(w, h.config.AuthSecret); err != nil {
		h.logger.Errorw("Login: failed to issue cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Index — сводка для главной страницы дашборда.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	count, err := h.messages.PendingCount(r.Context())
	if err != nil {
		h.logger.Errorw("Index: count failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending_count": count})
}

func (h *DashboardHandler) PendingMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50)
	msgs, err := h.messages.Pending(r.Context(), limit, offset)
	if err != nil {
		h.logger.Errorw("PendingMessages: list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messageDicts(msgs)})
}

func (h *DashboardHandler) ApprovedMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 100)
	msgs, err := h.messages.Approved(r.Context(), limit, offset)
	if err != nil {
		h.logger.Errorw("ApprovedMessages: list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messageDicts(msgs)})
}

func (h *DashboardHandler) AllMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 100)
	msgs, err := h.messages.All(r.Context(), limit, offset)
	if err != nil {
		h.logger.Errorw("AllMessages: list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messageDicts(msgs)})
}

func (h *DashboardHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}
	msg, err := h.messages.Get(r.Context(), id)
	if err != nil {
		h.logger.Errorw("GetMessage: failed", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if msg == nil {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, msg.ToDict())
}

func (h *DashboardHandler) ApproveMessage(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "approve", h.messages.Approve)
}

func (h *DashboardHandler) RejectMessage(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "reject", h.messages.Reject)
}

func (h *DashboardHandler) UnapproveMessage(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "unapprove", h.messages.Unapprove)
}

func (h *DashboardHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "delete", h.messages.Delete)
}

// EditMessage правит имя и/или содержимое сообщения.
func (h *DashboardHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	changed, err := h.messages.Update(r.Context(), id, req.Name, req.Content)
	if err != nil {
		h.logger.Errorw("EditMessage: failed", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !changed {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) ListInviteLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.invites.List(r.Context())
	if err != nil {
		h.logger.Errorw("ListInviteLinks: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]map[string]any, 0, len(links))
	for i := range links {
		out = append(out, links[i].ToDict())
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": out})
}

func (h *DashboardHandler) CreateInviteLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note         string `json:"note"`
		MaxUses      int    `json:"max_uses"`
		ExpiresHours int    `json:"expires_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	link, err := h.invites.Create(r.Context(), req.Note, req.MaxUses, req.ExpiresHours)
	if err != nil {
		h.logger.Errorw("CreateInviteLink: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, link.ToDict())
}

func (h *DashboardHandler) DeactivateInviteLink(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	done, err := h.invites.Deactivate(r.Context(), tok)
	if err != nil {
		h.logger.Errorw("DeactivateInviteLink: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !done {
		http.Error(w, "link not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	cover, err := h.covers.Active(r.Context())
	if err != nil {
		h.logger.Errorw("GetCover: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if cover == nil {
		writeJSON(w, http.StatusOK, map[string]any{"cover": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cover": map[string]any{
			"image_path": cover.ImagePath,
			"image_url":  "/media/" + cover.ImagePath,
		},
	})
}

// UploadCover принимает multipart-файл image и делает его активной обложкой.
func (h *DashboardHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 6*1024*1024)
	if err := r.ParseMultipartForm(6 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	path, err := h.covers.Upload(r.Context(), data, header.Filename)
	if err != nil {
		if status, ok := mediaErrorStatus(err); ok {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorw("UploadCover: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"image_path": path})
}

func (h *DashboardHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.settings.All(r.Context())
	if err != nil {
		h.logger.Errorw("GetSettings: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": all})
}

// SetSettings обновляет строки оформления (upsert по каждому ключу).
func (h *DashboardHandler) SetSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	for key, value := range req {
		if key != model.SettingRecipientName && key != model.SettingSubmissionHeading {
			http.Error(w, "unknown setting: "+key, http.StatusBadRequest)
			return
		}
		if err := h.settings.Set(r.Context(), key, value); err != nil {
			h.logger.Errorw("SetSettings: failed", "key", key, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// messageID разбирает path-параметр id, при ошибке отвечает 400.
func (h *DashboardHandler) messageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid message id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// moderate — общий каркас для approve/reject/unapprove/delete.
func (h *DashboardHandler) moderate(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, id int64) (bool, error),
) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}
	done, err := fn(r.Context(), id)
	if err != nil {
		h.logger.Errorw("moderation failed", "action", action, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !done {
		http.Error(w, "message not found or wrong status", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
