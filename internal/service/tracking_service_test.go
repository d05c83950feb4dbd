package service

import (
	"context"
	"errors"
	"testing"

	"mailtrack/internal/model"
	"mailtrack/internal/track"
)

type mockEmailStore struct {
	createFunc func(ctx context.Context, e *model.Email) error
	findFunc   func(ctx context.Context, sel track.Selector) (*model.Email, error)
	findCalls  []track.Selector
}

func (m *mockEmailStore) Create(ctx context.Context, e *model.Email) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, e)
	}
	return nil
}

func (m *mockEmailStore) FindBySelector(ctx context.Context, sel track.Selector) (*model.Email, error) {
	m.findCalls = append(m.findCalls, sel)
	return m.findFunc(ctx, sel)
}

type mockUserStore struct {
	appendIgnoredFunc  func(ctx context.Context, email, shortID string) error
	appendIgnoredCalls int
}

func (m *mockUserStore) AppendIgnored(ctx context.Context, email, shortID string) error {
	m.appendIgnoredCalls++
	if m.appendIgnoredFunc != nil {
		return m.appendIgnoredFunc(ctx, email, shortID)
	}
	return nil
}

type mockIssueStore struct {
	upsertFunc  func(ctx context.Context, shortID, addedBy string, p track.ReportPayload) error
	upsertCalls int
}

func (m *mockIssueStore) Upsert(ctx context.Context, shortID, addedBy string, p track.ReportPayload) error {
	m.upsertCalls++
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, shortID, addedBy, p)
	}
	return nil
}

type mockTrackingStore struct {
	incrementFunc  func(ctx context.Context, shortID, senderEmail string) (bool, error)
	incrementCalls int
}

func (m *mockTrackingStore) IncrementSend(ctx context.Context, shortID, senderEmail string) (bool, error) {
	m.incrementCalls++
	return m.incrementFunc(ctx, shortID, senderEmail)
}

type mockCache struct {
	entries         map[string]*model.Email
	setCalls        int
	invalidateCalls []string
}

func (m *mockCache) GetEmail(ctx context.Context, slug string) (*model.Email, bool) {
	e, ok := m.entries[slug]
	return e, ok
}

func (m *mockCache) SetEmail(ctx context.Context, slug string, e *model.Email) {
	m.setCalls++
}

func (m *mockCache) Invalidate(ctx context.Context, shortID string) {
	m.invalidateCalls = append(m.invalidateCalls, shortID)
}

type mockPublisher struct {
	publishFunc func(routingKey string, payload any) error
	published   []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	if m.publishFunc != nil {
		return m.publishFunc(routingKey, payload)
	}
	return nil
}

type mockSink struct {
	captured []error
}

func (m *mockSink) Capture(ctx context.Context, op string, err error) {
	m.captured = append(m.captured, err)
}

func TestTrackIncrementFirstTime(t *testing.T) {
	tracking := &mockTrackingStore{
		incrementFunc: func(ctx context.Context, shortID, senderEmail string) (bool, error) {
			if shortID != "abc123" || senderEmail != "a@x.com" {
				t.Errorf("IncrementSend(%q, %q)", shortID, senderEmail)
			}
			return true, nil
		},
	}
	cache := &mockCache{}
	pub := &mockPublisher{}
	sink := &mockSink{}
	svc := NewTrackingService(&mockEmailStore{}, &mockUserStore{}, &mockIssueStore{}, tracking, cache, pub, sink)

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:     "abc123",
		Action:      track.ActionIncrementSend,
		SenderEmail: "a@x.com",
	})

	if out != OutcomeIncremented {
		t.Errorf("outcome = %q, want incremented", out)
	}
	if len(cache.invalidateCalls) != 1 || cache.invalidateCalls[0] != "abc123" {
		t.Errorf("cache invalidations = %v", cache.invalidateCalls)
	}
	if len(pub.published) != 1 || pub.published[0] != "email.tracked" {
		t.Errorf("published = %v", pub.published)
	}
	if len(sink.captured) != 0 {
		t.Errorf("unexpected sink captures: %v", sink.captured)
	}
}

func TestTrackIncrementIdempotentSkip(t *testing.T) {
	tracking := &mockTrackingStore{
		incrementFunc: func(ctx context.Context, shortID, senderEmail string) (bool, error) {
			return false, nil
		},
	}
	cache := &mockCache{}
	pub := &mockPublisher{}
	svc := NewTrackingService(&mockEmailStore{}, &mockUserStore{}, &mockIssueStore{}, tracking, cache, pub, &mockSink{})

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:     "abc123",
		Action:      track.ActionIncrementSend,
		SenderEmail: "a@x.com",
	})

	// Repeat sends report the generic body, not "incremented".
	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if len(pub.published) != 0 {
		t.Errorf("skip should not publish, got %v", pub.published)
	}
	if len(cache.invalidateCalls) != 0 {
		t.Errorf("skip should not invalidate, got %v", cache.invalidateCalls)
	}
}

func TestTrackSuppress(t *testing.T) {
	users := &mockUserStore{
		appendIgnoredFunc: func(ctx context.Context, email, shortID string) error {
			if email != "b@x.com" || shortID != "abc123" {
				t.Errorf("AppendIgnored(%q, %q)", email, shortID)
			}
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := NewTrackingService(&mockEmailStore{}, users, &mockIssueStore{}, &mockTrackingStore{}, nil, pub, &mockSink{})

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:   "abc123",
		Action:    track.ActionSuppress,
		UserEmail: "b@x.com",
	})

	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if users.appendIgnoredCalls != 1 {
		t.Errorf("appendIgnoredCalls = %d", users.appendIgnoredCalls)
	}
	if len(pub.published) != 1 {
		t.Errorf("published = %v", pub.published)
	}
}

func TestTrackReport(t *testing.T) {
	var gotPayload track.ReportPayload
	issues := &mockIssueStore{
		upsertFunc: func(ctx context.Context, shortID, addedBy string, p track.ReportPayload) error {
			if shortID != "abc123" || addedBy != "c@x.com" {
				t.Errorf("Upsert(%q, %q)", shortID, addedBy)
			}
			gotPayload = p
			return nil
		},
	}
	svc := NewTrackingService(&mockEmailStore{}, &mockUserStore{}, issues, &mockTrackingStore{}, nil, nil, &mockSink{})

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:   "abc123",
		Action:    track.ActionReport,
		UserEmail: "c@x.com",
		Report:    track.ReportPayload{Kind: track.ReportCustom, Description: "spam content"},
	})

	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if gotPayload.Description != "spam content" {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestTrackNoneIsNoOp(t *testing.T) {
	users := &mockUserStore{}
	issues := &mockIssueStore{}
	tracking := &mockTrackingStore{}
	pub := &mockPublisher{}
	svc := NewTrackingService(&mockEmailStore{}, users, issues, tracking, nil, pub, &mockSink{})

	out := svc.Track(context.Background(), TrackCommand{ShortID: "abc123", Action: track.ActionNone})

	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if users.appendIgnoredCalls+issues.upsertCalls+tracking.incrementCalls != 0 {
		t.Error("no-op request must not touch any store")
	}
	if len(pub.published) != 0 {
		t.Errorf("published = %v", pub.published)
	}
}

// Store failures are swallowed: the outcome stays success-shaped and
// exactly one error report is emitted.
func TestTrackStoreFailureIsSwallowed(t *testing.T) {
	tracking := &mockTrackingStore{
		incrementFunc: func(ctx context.Context, shortID, senderEmail string) (bool, error) {
			return false, errors.New("connection refused")
		},
	}
	pub := &mockPublisher{}
	sink := &mockSink{}
	svc := NewTrackingService(&mockEmailStore{}, &mockUserStore{}, &mockIssueStore{}, tracking, nil, pub, sink)

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:     "abc123",
		Action:      track.ActionIncrementSend,
		SenderEmail: "a@x.com",
	})

	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if len(sink.captured) != 1 {
		t.Errorf("sink captures = %d, want exactly 1", len(sink.captured))
	}
	if len(pub.published) != 0 {
		t.Errorf("failed action must not publish, got %v", pub.published)
	}
}

func TestTrackPublishFailureGoesToSink(t *testing.T) {
	users := &mockUserStore{}
	pub := &mockPublisher{
		publishFunc: func(routingKey string, payload any) error {
			return errors.New("channel closed")
		},
	}
	sink := &mockSink{}
	svc := NewTrackingService(&mockEmailStore{}, users, &mockIssueStore{}, &mockTrackingStore{}, nil, pub, sink)

	out := svc.Track(context.Background(), TrackCommand{
		ShortID:   "abc123",
		Action:    track.ActionSuppress,
		UserEmail: "b@x.com",
	})

	if out != OutcomeOK {
		t.Errorf("outcome = %q, want ok", out)
	}
	if len(sink.captured) != 1 {
		t.Errorf("sink captures = %d, want 1", len(sink.captured))
	}
}

func TestLookupEmailCache(t *testing.T) {
	stored := &model.Email{ID: "a3bb189e-8bf9-3888-9912-ace4e6543002", ShortID: "abc123"}
	emails := &mockEmailStore{
		findFunc: func(ctx context.Context, sel track.Selector) (*model.Email, error) {
			return stored, nil
		},
	}
	cache := &mockCache{entries: map[string]*model.Email{}}
	svc := NewTrackingService(emails, &mockUserStore{}, &mockIssueStore{}, &mockTrackingStore{}, cache, nil, &mockSink{})

	// Miss populates the cache.
	e, err := svc.LookupEmail(context.Background(), "abc123")
	if err != nil || e != stored {
		t.Fatalf("LookupEmail = %v, %v", e, err)
	}
	if cache.setCalls != 1 {
		t.Errorf("setCalls = %d, want 1", cache.setCalls)
	}

	// Hit bypasses the store.
	cache.entries["abc123"] = stored
	if _, err := svc.LookupEmail(context.Background(), "abc123"); err != nil {
		t.Fatal(err)
	}
	if len(emails.findCalls) != 1 {
		t.Errorf("store queried %d times, want 1", len(emails.findCalls))
	}
}

func TestLookupEmailSelectsByKind(t *testing.T) {
	emails := &mockEmailStore{
		findFunc: func(ctx context.Context, sel track.Selector) (*model.Email, error) {
			return nil, nil
		},
	}
	svc := NewTrackingService(emails, &mockUserStore{}, &mockIssueStore{}, &mockTrackingStore{}, nil, nil, &mockSink{})

	if _, err := svc.LookupEmail(context.Background(), "a3bb189e-8bf9-3888-9912-ace4e6543002"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.LookupEmail(context.Background(), "abc123"); err != nil {
		t.Fatal(err)
	}

	if !emails.findCalls[0].ByID {
		t.Error("UUID slug should query by canonical id")
	}
	if emails.findCalls[1].ByID {
		t.Error("shortid slug should query by shortid")
	}
}

func TestRegisterEmail(t *testing.T) {
	var created *model.Email
	emails := &mockEmailStore{
		createFunc: func(ctx context.Context, e *model.Email) error {
			created = e
			return nil
		},
	}
	svc := NewTrackingService(emails, &mockUserStore{}, &mockIssueStore{}, &mockTrackingStore{}, nil, nil, &mockSink{})

	e, err := svc.RegisterEmail(context.Background(), "hello")
	if err != nil {
		t.Fatalf("RegisterEmail: %v", err)
	}
	if created != e {
		t.Error("returned record is not the created one")
	}
	if !track.IsUUID(e.ID) {
		t.Errorf("id %q is not a canonical UUID", e.ID)
	}
	if e.ShortID == "" || track.IsUUID(e.ShortID) {
		t.Errorf("shortid %q should be a compact non-UUID key", e.ShortID)
	}
	if e.Subject != "hello" {
		t.Errorf("subject = %q", e.Subject)
	}
}
