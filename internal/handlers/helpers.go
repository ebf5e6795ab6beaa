package handlers

import (
	"VirtualCard/internal/media"
	"VirtualCard/internal/model"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// writeJSON сериализует ответ; ошибки кодирования уже не исправить, глотаем.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// tokenErrorStatus переводит ошибку проверки токена в HTTP-статус.
// Любая из них означает отказ в отправке по этой ссылке.
func tokenErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, model.ErrTokenNotFound),
		errors.Is(err, model.ErrTokenDeactivated),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenUseLimit):
		return http.StatusForbidden, true
	}
	return 0, false
}

// mediaErrorStatus переводит ошибку обработки медиа в HTTP-статус.
func mediaErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, true
	case errors.Is(err, media.ErrUnsupportedType):
		return http.StatusBadRequest, true
	case errors.Is(err, media.ErrThumbnail):
		// возможно временная недоступность инструмента — пусть пробуют ещё раз
		return http.StatusBadGateway, true
	}
	return 0, false
}

// clientIP достаёт адрес клиента с учётом обратного прокси.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// mediaKind определяет вид вложения по заявленному клиентом Content-Type.
// Фактический тип перепроверяется процессорами по содержимому.
func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return model.MediaVideo
	case strings.HasPrefix(contentType, "image/"):
		return model.MediaImage
	}
	return ""
}

// pageParams читает limit/offset из query с дефолтом по limit.
func pageParams(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// messageDicts переводит список сообщений в JSON-представление.
func messageDicts(msgs []model.Message) []map[string]any {
	out := make([]map[string]any, 0, len(msgs))
	for i := range msgs {
		out = append(out, msgs[i].ToDict())
	}
	return out
}
