package mcp

import (
	"context"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
	"github.com/custodia-labs/confrep/internal/markup"
)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	page      *domain.RemotePage
	outcome   domain.Outcome
	status    int
	err       error
	published []driving.PublishRequest
}

func (m *mockReportService) Render(units []domain.ContentUnit) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return markup.RenderAll(units...)
}

func (m *mockReportService) Publish(_ context.Context, req driving.PublishRequest) (*domain.PublishResult, error) {
	m.published = append(m.published, req)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PublishResult{Outcome: m.outcome, Page: m.page}, nil
}

func (m *mockReportService) Update(_ context.Context, _ driving.UpdateRequest) (*domain.PublishResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PublishResult{Outcome: domain.OutcomeUpdated, Page: m.page}, nil
}

func (m *mockReportService) Get(_ context.Context, _ string) (*domain.RemotePage, error) {
	return m.page, m.err
}

func (m *mockReportService) Delete(_ context.Context, _ string) (int, error) {
	return m.status, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.PublishRecord
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.PublishRecord, error) {
	if len(m.records) > limit {
		return m.records[:limit], m.err
	}
	return m.records, m.err
}

func (m *mockHistoryService) ForPage(_ context.Context, _ string) ([]domain.PublishRecord, error) {
	return m.records, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.settings, nil
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Entries() []driving.SettingEntry {
	return nil
}

func (m *mockSettingsService) Path() string {
	return ":memory:"
}
