package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"villamare/internal/app/commands"
	"villamare/internal/app/dto"
	bookingapp "villamare/internal/app/handlers/booking"
	"villamare/internal/app/queries"
	"villamare/internal/infra/security"
)

// AdminHandler is the password-gated dashboard surface: review requests and
// drive their status transitions.
type AdminHandler struct {
	Commands     commands.Bus
	Queries      queries.Bus
	Sessions     *security.SessionStore
	Hasher       security.BcryptHasher
	PasswordHash string
	Logger       *slog.Logger
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.PasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
		return
	}
	if err := h.Hasher.Compare(h.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}
	token, err := h.Sessions.Issue()
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("session issue failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h AdminHandler) Logout(c *gin.Context) {
	if token := extractBearerToken(c.GetHeader("Authorization")); token != "" {
		h.Sessions.Revoke(token)
	}
	c.Status(http.StatusNoContent)
}

// Authorize rejects requests without a valid session token.
func (h AdminHandler) Authorize(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if !h.Sessions.Valid(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (h AdminHandler) ListRequests(c *gin.Context) {
	result, err := queries.Ask[bookingapp.ListRequestsQuery, dto.BookingRequestCollection](c.Request.Context(), h.Queries, bookingapp.ListRequestsQuery{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AdminHandler) GetRequest(c *gin.Context) {
	result, err := queries.Ask[bookingapp.GetRequestQuery, dto.BookingRequestSummary](c.Request.Context(), h.Queries, bookingapp.GetRequestQuery{
		RequestID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h AdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := commands.Dispatch[bookingapp.UpdateStatusCommand, dto.BookingRequestSummary](c.Request.Context(), h.Commands, bookingapp.UpdateStatusCommand{
		RequestID: c.Param("id"),
		Status:    req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

var _ AdminHTTP = AdminHandler{}
