package handlers

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/model"
	"VirtualCard/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CardHandler — публичная страница открытки. Только чтение,
// видны исключительно одобренные сообщения.
type CardHandler struct {
	Router chi.Router

	card     *service.CardService
	settings *service.SettingsService
	logger   *zap.SugaredLogger
	config   *config.Config
}

// NewCardHandler собирает роутер страницы открытки.
func NewCardHandler(
	card *service.CardService,
	settings *service.SettingsService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *CardHandler {
	h := &CardHandler{card: card, settings: settings, logger: logger, config: cfg}

	r := chi.NewRouter()
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	r.Get("/", h.Index)
	r.Get("/api/messages", h.Messages)
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaPath))))

	h.Router = r
	return h
}

// Index отдаёт данные заголовка страницы: имя адресата и обложку.
func (h *CardHandler) Index(w http.ResponseWriter, r *http.Request) {
	recipient, err := h.settings.Get(r.Context(), model.SettingRecipientName, "Bob")
	if err != nil {
		h.logger.Errorw("Index: settings read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	cover, err := h.card.ActiveCover(r.Context())
	if err != nil {
		h.logger.Errorw("Index: cover read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var coverURL any
	if cover != nil {
		coverURL = "/media/" + cover.ImagePath
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recipient_name": recipient,
		"cover_url":      coverURL,
	})
}

// Messages отдаёт одобренные сообщения для фронтенда открытки.
func (h *CardHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.card.MessagesJSON(r.Context())
	if err != nil {
		h.logger.Errorw("Messages: failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
