package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/router"
)

const socketIdleTimeout = time.Minute

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: 10 * time.Second,
}

// echoSocket upgrades the request and echoes every message back until the
// peer closes or stays idle past socketIdleTimeout.
func (a *app) echoSocket(ctx *router.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		// headers set by outer layers travel with the 101 response
		conn, err := upgrader.Upgrade(w, r, w.Header())
		if err != nil {
			// the upgrader has already answered with an error status
			a.log.DebugContext(ctx, "websocket upgrade failed", logger.Component("demo"), logger.Error(err))
			return nil
		}
		defer conn.Close()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(socketIdleTimeout))
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					a.log.DebugContext(ctx, "websocket closed", logger.Component("demo"), logger.Error(err))
				}
				return nil
			}
			if err := conn.WriteMessage(kind, msg); err != nil {
				return nil
			}
		}
	}
}
