package controllers

import (
	"net/http"
	"time"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// CoupleWS streams couple events (partner messages) to the client.
func (rc *RealtimeController) CoupleWS(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(coupleID, userID, conn)
	rc.RT.Register(cl)

	// ping to keep connections alive through some proxies; writes go
	// through the client so they never race a hub broadcast
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.RT.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
