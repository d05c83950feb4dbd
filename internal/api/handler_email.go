package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailtrack/internal/model"
	"mailtrack/internal/service"
	"mailtrack/internal/track"
	"mailtrack/internal/util"
)

type trackingService interface {
	LookupEmail(ctx context.Context, slug string) (*model.Email, error)
	RegisterEmail(ctx context.Context, subject string) (*model.Email, error)
	Track(ctx context.Context, cmd service.TrackCommand) service.Outcome
}

type failureSink interface {
	Capture(ctx context.Context, op string, err error)
}

// EmailHandler serves the tracking surface under /data/email.
type EmailHandler struct {
	tracking  trackingService
	sink      failureSink
	jwtSecret string
}

func NewEmailHandler(tracking trackingService, sink failureSink, jwtSecret string) *EmailHandler {
	return &EmailHandler{
		tracking:  tracking,
		sink:      sink,
		jwtSecret: jwtSecret,
	}
}

// GetEmail handles GET /data/email/:slug. The slug is either a
// canonical UUID or a shortid; a missing record is a JSON null body,
// not an error status.
func (h *EmailHandler) GetEmail(c *gin.Context) {
	email, err := h.tracking.LookupEmail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch email"})
		return
	}

	c.JSON(http.StatusOK, email)
}

// CreateEmail handles POST /data/email. Requires a session cookie.
func (h *EmailHandler) CreateEmail(c *gin.Context) {
	token := util.ExtractSessionToken(c.Request)
	if _, err := util.ParseSessionToken(token, h.jwtSecret); err != nil {
		c.String(http.StatusUnauthorized, "Invalid token")
		return
	}

	var req struct {
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	email, err := h.tracking.RegisterEmail(c.Request.Context(), req.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create email"})
		return
	}

	c.JSON(http.StatusCreated, email)
}

// TrackEmail handles POST /data/email/:slug, the tracking endpoint.
// The session claim must match one of the identity headers; past that
// point the request always reports success. Mutations only ever
// address records by shortid, never by canonical id.
func (h *EmailHandler) TrackEmail(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	token := util.ExtractSessionToken(c.Request)
	claimEmail, err := util.ParseSessionToken(token, h.jwtSecret)
	if err != nil {
		c.String(http.StatusUnauthorized, "Invalid token")
		return
	}

	senderEmail := c.GetHeader(track.HeaderSenderEmail)
	userEmail := c.GetHeader(track.HeaderUserEmail)
	if claimEmail != senderEmail && claimEmail != userEmail {
		c.String(http.StatusForbidden, "Email address mismatch")
		return
	}

	action := track.Classify(track.Signals{
		IncrementSend: c.GetHeader(track.HeaderIncrementSend) == "true",
		RemoveContent: c.GetHeader(track.HeaderRemoveContent) == "true",
		ReportContent: c.GetHeader(track.HeaderReportContent) == "true",
		SenderEmail:   senderEmail,
		UserEmail:     userEmail,
		HasBody:       c.Request.Body != nil && c.Request.ContentLength != 0,
	})

	cmd := service.TrackCommand{
		ShortID:     slug,
		Action:      action,
		SenderEmail: senderEmail,
		UserEmail:   userEmail,
	}

	if action == track.ActionReport {
		payload, perr := track.ParseReport(c.Request.Body)
		if perr != nil {
			// Malformed bodies fall under the best-effort policy too.
			h.sink.Capture(ctx, "email.track.body", perr)
			c.String(http.StatusOK, string(service.OutcomeOK))
			return
		}
		cmd.Report = payload
	}

	outcome := h.tracking.Track(ctx, cmd)
	c.String(http.StatusOK, string(outcome))
}
