package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mailtrack/internal/model"
	"mailtrack/internal/mq"
	"mailtrack/internal/track"
	"mailtrack/internal/util"
	"mailtrack/pkg/metrics"
)

// Outcome is the response body of the tracking endpoint.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeIncremented Outcome = "incremented"
)

type emailStore interface {
	Create(ctx context.Context, e *model.Email) error
	FindBySelector(ctx context.Context, sel track.Selector) (*model.Email, error)
}

type userStore interface {
	AppendIgnored(ctx context.Context, email, shortID string) error
}

type issueStore interface {
	Upsert(ctx context.Context, shortID, addedBy string, p track.ReportPayload) error
}

type trackingStore interface {
	IncrementSend(ctx context.Context, shortID, senderEmail string) (bool, error)
}

type emailCache interface {
	GetEmail(ctx context.Context, slug string) (*model.Email, bool)
	SetEmail(ctx context.Context, slug string, e *model.Email)
	Invalidate(ctx context.Context, shortID string)
}

type eventPublisher interface {
	Publish(routingKey string, payload any) error
}

type failureSink interface {
	Capture(ctx context.Context, op string, err error)
}

// TrackCommand is one classified tracking request.
type TrackCommand struct {
	ShortID     string
	Action      track.Action
	SenderEmail string
	UserEmail   string
	Report      track.ReportPayload
}

// TrackingService owns the email-engagement state transitions. Cache
// and producer may be nil; both are optional accelerators around the
// store of record.
type TrackingService struct {
	emails   emailStore
	users    userStore
	issues   issueStore
	tracking trackingStore
	cache    emailCache
	producer eventPublisher
	sink     failureSink
}

func NewTrackingService(
	emails emailStore,
	users userStore,
	issues issueStore,
	tracking trackingStore,
	cache emailCache,
	producer eventPublisher,
	sink failureSink,
) *TrackingService {
	return &TrackingService{
		emails:   emails,
		users:    users,
		issues:   issues,
		tracking: tracking,
		cache:    cache,
		producer: producer,
		sink:     sink,
	}
}

// LookupEmail resolves a slug (canonical id or shortid) to a record.
// A missing record is a nil result, not an error.
func (s *TrackingService) LookupEmail(ctx context.Context, slug string) (*model.Email, error) {
	sel := track.ParseSlug(slug)

	if s.cache != nil {
		if e, ok := s.cache.GetEmail(ctx, slug); ok {
			return e, nil
		}
	}

	e, err := s.emails.FindBySelector(ctx, sel)
	if err != nil {
		return nil, err
	}
	if e != nil && s.cache != nil {
		s.cache.SetEmail(ctx, slug, e)
	}
	return e, nil
}

// RegisterEmail creates a new trackable email record.
func (s *TrackingService) RegisterEmail(ctx context.Context, subject string) (*model.Email, error) {
	e := &model.Email{
		ID:      uuid.NewString(),
		ShortID: util.GenerateShortID(),
		Subject: subject,
	}
	if err := s.emails.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Track applies the command's action in best-effort mode: every store
// failure goes to the sink and the caller still gets a success-shaped
// outcome. The only outcome that distinguishes itself is a first-time
// increment; idempotent skips, no-op requests and swallowed failures
// all report OutcomeOK.
func (s *TrackingService) Track(ctx context.Context, cmd TrackCommand) Outcome {
	var (
		actor   string
		applied bool
		err     error
	)

	switch cmd.Action {
	case track.ActionIncrementSend:
		actor = cmd.SenderEmail
		applied, err = s.tracking.IncrementSend(ctx, cmd.ShortID, cmd.SenderEmail)
	case track.ActionSuppress:
		actor = cmd.UserEmail
		err = s.users.AppendIgnored(ctx, cmd.UserEmail, cmd.ShortID)
		applied = err == nil
	case track.ActionReport:
		actor = cmd.UserEmail
		err = s.issues.Upsert(ctx, cmd.ShortID, cmd.UserEmail, cmd.Report)
		applied = err == nil
	default:
		return OutcomeOK
	}

	if err != nil {
		s.sink.Capture(ctx, "email.track", err)
		metrics.TrackingActionCount.WithLabelValues(cmd.Action.String(), "error").Inc()
		return OutcomeOK
	}

	if !applied {
		metrics.TrackingActionCount.WithLabelValues(cmd.Action.String(), "skipped").Inc()
		return OutcomeOK
	}

	metrics.TrackingActionCount.WithLabelValues(cmd.Action.String(), "applied").Inc()

	if cmd.Action == track.ActionIncrementSend && s.cache != nil {
		s.cache.Invalidate(ctx, cmd.ShortID)
	}

	if s.producer != nil {
		ev := mq.EmailTrackedEvent{
			ShortID:    cmd.ShortID,
			Action:     cmd.Action.String(),
			ActorEmail: actor,
			OccurredAt: time.Now().UTC(),
		}
		if perr := s.producer.Publish(mq.RoutingKeyEmailTracked, ev); perr != nil {
			s.sink.Capture(ctx, "email.track.publish", perr)
		}
	}

	if cmd.Action == track.ActionIncrementSend {
		return OutcomeIncremented
	}
	return OutcomeOK
}
