package controllers

import (
	"net/http"
	"strconv"

	"freshkeep/config"
	"freshkeep/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var hub = services.NewRealtimeHub()

func alertService() *services.AlertService {
	db := config.DB
	return services.NewAlertService(db,
		services.NewStatusService(db),
		services.NewSettingsService(db),
		hub,
	)
}

// GET /alerts?limit=N
func ListAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	alerts, err := alertService().List(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// POST /alerts/check runs the expiration sweep and returns the alerts it
// created this time around.
func CheckAlerts(c *gin.Context) {
	created, err := alertService().CheckExpirations()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

var upgrader = websocket.Upgrader{
	// the bearer token already gates this route
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws streams alerts to the device until it disconnects.
func AlertStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{Device: c.GetString("device"), Conn: conn}
	hub.Register(client)
	defer hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
