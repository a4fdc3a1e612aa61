package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	"github.com/githubzohaib/Forest-MGT/internal/models"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

// GetMessages serves the paginated history query:
// GET /api/messages?toUser=&fromUser=&isBroadcast=&limit=20&skip=0
func (h *Handler) GetMessages(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	f := gateway.HistoryFilter{
		ToUser:   c.Query("toUser"),
		FromUser: c.Query("fromUser"),
		Skip:     intQuery(c, "skip", 0),
		Limit:    intQuery(c, "limit", models.DefaultHistoryLimit),
	}
	if raw := c.Query("isBroadcast"); raw != "" {
		isBroadcast := raw == "true"
		f.IsBroadcast = &isBroadcast
	}

	messages, err := h.Gateway.History(user.ID, user.Role, f)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// PostMessage submits a message over HTTP. The response is the stored
// message, or a structured validation failure.
func (h *Handler) PostMessage(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body."})
		return
	}

	msg, err := h.Gateway.Submit(user.ID, user.Role, req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

type readRequest struct {
	MessageID uint `json:"messageId"`
}

// MarkMessageRead records a read receipt: POST /api/messages/read {messageId}.
func (h *Handler) MarkMessageRead(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	var req readRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MessageID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messageId is required."})
		return
	}

	if err := h.Gateway.MarkRead(user.ID, req.MessageID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// statusFor maps core error codes onto HTTP statuses.
func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
