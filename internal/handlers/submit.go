package handlers

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/model"
	"VirtualCard/internal/service"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// SubmitHandler — публичный сервис отправки, закрытый пригласительным токеном.
type SubmitHandler struct {
	Router chi.Router

	submissions *service.SubmissionService
	settings    *service.SettingsService
	logger      *zap.SugaredLogger
	config      *config.Config
}

// NewSubmitHandler собирает роутер сервиса отправки.
func NewSubmitHandler(
	submissions *service.SubmissionService,
	settings *service.SettingsService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *SubmitHandler {
	h := &SubmitHandler{
		submissions: submissions,
		settings:    settings,
		logger:      logger,
		config:      cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(httprate.LimitByIP(100, time.Hour))

	r.Get("/health", h.Health)
	r.Get("/submit/{token}", h.Form)
	// отправка ограничена жёстче, чем остальной сервис
	r.With(
		httprate.LimitByIP(5, time.Hour),
		httprate.LimitByIP(1, time.Minute),
	).Post("/submit/{token}", h.Submit)

	h.Router = r
	return h
}

// Health — проверка живости.
func (h *SubmitHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Form проверяет токен и отдаёт строки оформления для формы.
func (h *SubmitHandler) Form(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")

	if err := h.submissions.ValidateToken(r.Context(), tok); err != nil {
		if status, ok := tokenErrorStatus(err); ok {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorw("Form: token check failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	recipient, err := h.settings.Get(r.Context(), model.SettingRecipientName, "Bob")
	if err != nil {
		h.logger.Errorw("Form: settings read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	heading, err := h.settings.Get(r.Context(), model.SettingSubmissionHeading, "Send a Message!")
	if err != nil {
		h.logger.Errorw("Form: settings read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":              tok,
		"recipient_name":     recipient,
		"submission_heading": heading,
	})
}

// Submit принимает multipart-форму: name, content и необязательный файл image.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")

	// лимит тела: видео до 50 МБ плюс запас на остальные поля
	r.Body = http.MaxBytesReader(w, r.Body, 51*1024*1024)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.logger.Warnw("Submit: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	content := strings.TrimSpace(r.FormValue("content"))
	if name == "" || content == "" {
		http.Error(w, "name and message are required", http.StatusBadRequest)
		return
	}

	sub := service.Submission{
		Token:     tok,
		Name:      name,
		Content:   content,
		IPAddress: clientIP(r),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if header.Filename != "" {
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				h.logger.Warnw("Submit: failed to read upload", "error", readErr)
				http.Error(w, "failed to read upload", http.StatusBadRequest)
				return
			}
			sub.MediaData = data
			sub.MediaFilename = header.Filename
			sub.MediaType = mediaKind(header.Header.Get("Content-Type"))
		}
	}

	msg, err := h.submissions.Create(r.Context(), sub)
	if err != nil {
		if status, ok := tokenErrorStatus(err); ok {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		if status, ok := mediaErrorStatus(err); ok {
			h.logger.Warnw("Submit: media rejected", "token", tok, "error", err)
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorw("Submit: service error", "token", tok, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Infow("Submit: message accepted", "uuid", msg.UUID, "media_type", msg.MediaType)
	writeJSON(w, http.StatusCreated, map[string]string{
		"status": "ok",
		"uuid":   msg.UUID,
	})
}
