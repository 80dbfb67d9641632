package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hikarukin/blogspace/internal/notifyservice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the browser client connects from the app's own origin; cross-origin
	// checks are left to the reverse proxy
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWS upgrades the connection and hands it to the hub. No auth: the
// live channel only ever pushes already-public notification events.
func (app *application) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := notifyservice.NewClient(app.hub, conn, app.logger)
	app.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
