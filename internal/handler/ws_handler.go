package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/exam"
	"github.com/cetprep/cetprep-backend/internal/service"
	ws "github.com/cetprep/cetprep-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the exam countdown over WebSocket.
type WSHandler struct {
	attemptService *service.AttemptService
	cfg            *config.Config
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(attemptService *service.AttemptService, cfg *config.Config, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		attemptService: attemptService,
		cfg:            cfg,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(cfg.AllowedOrigins),
	}
}

// TimerStream godoc
// WS /ws/v1/attempts/:attempt_id/timer
// Pushes one countdown reading on connect and then once per second. When the
// deadline passes the final tick is followed by a single expired event and
// the stream closes. The attempt itself is auto-submitted server-side; the
// stream is display-only.
func (h *WSHandler) TimerStream(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt ID"})
		return
	}

	deadline, err := h.attemptService.Deadline(attemptID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no live attempt with this ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("attempt_id", attemptID.String()).Logger()
	wsLog.Info().Time("deadline", deadline).Msg("Timer stream connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The countdown goroutine and the read pump both write to the
	// connection; gorilla allows one concurrent writer.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	go h.readPump(conn, wsLog, cancel, write)

	countdown := exam.NewCountdown(deadline, h.cfg.LowTimeThreshold, 0)
	countdown.Run(ctx,
		func(snap exam.Snapshot) {
			if err := write(ws.TickEvent{Event: ws.EventTick, Timer: snap}); err != nil {
				cancel()
			}
		},
		func() {
			_ = write(ws.ExpiredEvent{Event: ws.EventExpired})
		},
	)

	wsLog.Debug().Msg("Timer stream closed")
}

// readPump consumes client messages until the connection drops, answering
// pings and cancelling the countdown on close.
func (h *WSHandler) readPump(conn *websocket.Conn, wsLog zerolog.Logger, cancel context.CancelFunc, write func(interface{}) error) {
	defer cancel()

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			_ = write(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			_ = write(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}
