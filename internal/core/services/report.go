package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
	"github.com/custodia-labs/confrep/internal/logger"
	"github.com/custodia-labs/confrep/internal/markup"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService composes report bodies and publishes them as pages.
//
// The lookup, decision and write sequence of Publish is not atomic: another
// writer may create a page with the same title between the lookup and the
// create. Each workflow performs at most one write and never retries.
type ReportService struct {
	client     driven.ContentClient
	publishLog driven.PublishLog
	now        func() time.Time
}

// NewReportService creates a new report service.
// publishLog may be nil, in which case no history is kept.
func NewReportService(client driven.ContentClient, publishLog driven.PublishLog) *ReportService {
	return &ReportService{
		client:     client,
		publishLog: publishLog,
		now:        time.Now,
	}
}

// Render emits every unit in order and validates the concatenation.
func (s *ReportService) Render(units []domain.ContentUnit) (string, error) {
	return build(units, "")
}

// Publish creates a page, or updates an existing page with the same title
// according to the request's overwrite policy.
func (s *ReportService) Publish(ctx context.Context, req driving.PublishRequest) (*domain.PublishResult, error) {
	if s.client == nil {
		return nil, domain.ErrNotConfigured
	}
	if strings.TrimSpace(req.Space) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: space and title are required", domain.ErrInvalidInput)
	}

	policy := req.Policy
	if policy == "" {
		policy = domain.AskCaller
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: overwrite policy %q", domain.ErrInvalidInput, policy)
	}
	if policy == domain.AskCaller && req.Decide == nil {
		return nil, domain.ErrDecisionRequired
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.ModeReplace
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: update mode %q", domain.ErrInvalidInput, mode)
	}

	content, err := build(req.Units, req.Body)
	if err != nil {
		return nil, err
	}

	logger.Section("Publish")
	existing, err := s.lookup(ctx, req.Space, req.Title)
	if err != nil {
		return nil, err
	}

	if !existing.found {
		logger.Info("No page titled %q in %s, creating", req.Title, req.Space)
		page, err := s.client.Create(ctx, req.Space, req.Title, req.ParentID, content)
		if err != nil {
			return nil, fmt.Errorf("create page: %w", err)
		}
		return s.finish(ctx, domain.OutcomeCreated, page), nil
	}

	overwrite, err := decide(ctx, policy, req.Decide, existing.page)
	if err != nil {
		return nil, err
	}
	if !overwrite {
		logger.Info("Page %s left unchanged", existing.page.ID)
		return &domain.PublishResult{Outcome: domain.OutcomeNotModified, Page: existing.page}, nil
	}

	return s.overwrite(ctx, existing.page.ID, req.Title, content, mode)
}

// Update re-fetches a page and replaces or appends to its body.
func (s *ReportService) Update(ctx context.Context, req driving.UpdateRequest) (*domain.PublishResult, error) {
	if s.client == nil {
		return nil, domain.ErrNotConfigured
	}
	if strings.TrimSpace(req.PageID) == "" {
		return nil, fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.ModeAppend
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: update mode %q", domain.ErrInvalidInput, mode)
	}

	content, err := build(req.Units, req.Body)
	if err != nil {
		return nil, err
	}

	logger.Section("Update")
	return s.overwrite(ctx, req.PageID, req.Title, content, mode)
}

// Get retrieves a page with body and version.
func (s *ReportService) Get(ctx context.Context, pageID string) (*domain.RemotePage, error) {
	if s.client == nil {
		return nil, domain.ErrNotConfigured
	}
	if strings.TrimSpace(pageID) == "" {
		return nil, fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	return s.client.Get(ctx, pageID)
}

// Delete removes a page and returns the raw status code.
func (s *ReportService) Delete(ctx context.Context, pageID string) (int, error) {
	if s.client == nil {
		return 0, domain.ErrNotConfigured
	}
	if strings.TrimSpace(pageID) == "" {
		return 0, fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	return s.client.Delete(ctx, pageID)
}

// overwrite re-fetches the page so the update is based on the latest
// version, combines bodies, validates the result and writes once.
func (s *ReportService) overwrite(
	ctx context.Context,
	pageID, title, content string,
	mode domain.UpdateMode,
) (*domain.PublishResult, error) {
	current, err := s.client.Get(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", pageID, err)
	}

	body := mode.Combine(current.Body, content)
	if err := markup.Check(body); err != nil {
		return nil, err
	}

	if title == "" {
		title = current.Title
	}

	logger.Info("Updating page %s from version %d (%s)", current.ID, current.Version, mode)
	page, err := s.client.Update(ctx, current.ID, title, body, current.Version)
	if err != nil {
		return nil, fmt.Errorf("update page %s: %w", current.ID, err)
	}
	if page.SpaceKey == "" {
		page.SpaceKey = current.SpaceKey
	}
	return s.finish(ctx, domain.OutcomeUpdated, page), nil
}

// existence is the result of a title lookup. A failed lookup is an error,
// never a negative result.
type existence struct {
	found bool
	page  *domain.RemotePage
}

func (s *ReportService) lookup(ctx context.Context, space, title string) (existence, error) {
	page, err := s.client.FindByTitle(ctx, space, title)
	if err != nil {
		if domain.IsNotFound(err) {
			return existence{}, nil
		}
		return existence{}, fmt.Errorf("look up page %q: %w", title, err)
	}
	return existence{found: true, page: page}, nil
}

func decide(
	ctx context.Context,
	policy domain.OverwritePolicy,
	fn domain.DecisionFunc,
	page *domain.RemotePage,
) (bool, error) {
	switch policy {
	case domain.AlwaysOverwrite:
		return true, nil
	case domain.NeverOverwrite:
		return false, nil
	default:
		ok, err := fn(ctx, page)
		if err != nil {
			return false, fmt.Errorf("overwrite decision: %w", err)
		}
		return ok, nil
	}
}

// finish records a successful write and wraps the result.
// History failures are logged and do not fail the publish.
func (s *ReportService) finish(ctx context.Context, outcome domain.Outcome, page *domain.RemotePage) *domain.PublishResult {
	if s.publishLog != nil {
		record := domain.PublishRecord{
			ID:          uuid.New().String(),
			PageID:      page.ID,
			SpaceKey:    page.SpaceKey,
			Title:       page.Title,
			Version:     page.Version,
			Outcome:     outcome,
			PublishedAt: s.now(),
		}
		if err := s.publishLog.Record(ctx, record); err != nil {
			logger.Warn("record publish of page %s: %v", page.ID, err)
		}
	}
	return &domain.PublishResult{Outcome: outcome, Page: page}
}

// build renders units, appends pre-rendered markup and validates the whole.
func build(units []domain.ContentUnit, extra string) (string, error) {
	rendered, err := markup.RenderAll(units...)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	body := rendered + extra
	if err := markup.Check(body); err != nil {
		return "", err
	}
	return body, nil
}
