package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"weightloss/internal/app/client/remote"
)

// ChangeEvent - уведомление сервера об изменении коллекции
type ChangeEvent struct {
	Collection string `json:"collection"`
}

// Watch подписывается на /logs/stream и вызывает onChange на каждое событие.
// Блокируется до отмены ctx или обрыва соединения.
func (g *Gateway) Watch(ctx context.Context, onChange func(collection string)) error {
	if err := g.Init(ctx); err != nil {
		return err
	}

	header := http.Header{}
	if token := g.bearer(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, streamURL(g.baseURL), header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return fmt.Errorf("%w: ошибка подключения к потоку: %v", remote.ErrUnavailable, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var ev ChangeEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: поток закрыт: %v", remote.ErrUnavailable, err)
		}

		g.log.Debug("Получено событие", "collection", ev.Collection)
		onChange(ev.Collection)
	}
}

func streamURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/logs/stream"
}
