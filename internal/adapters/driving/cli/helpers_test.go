package cli

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/services"
)

// fakeClient is an in-memory driven.ContentClient.
type fakeClient struct {
	mu           sync.Mutex
	pages        map[string]*domain.RemotePage
	next         int
	deleteStatus int
}

var _ driven.ContentClient = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{pages: make(map[string]*domain.RemotePage), next: 100, deleteStatus: 204}
}

func (f *fakeClient) add(page domain.RemotePage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := page
	f.pages[p.ID] = &p
}

func (f *fakeClient) page(id string) *domain.RemotePage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pages[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (f *fakeClient) Create(_ context.Context, space, title, parentID, body string) (*domain.RemotePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	p := &domain.RemotePage{
		ID:       strconv.Itoa(f.next),
		SpaceKey: space,
		Title:    title,
		Version:  1,
		Body:     body,
		ParentID: parentID,
	}
	f.pages[p.ID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeClient) Get(_ context.Context, id string) (*domain.RemotePage, error) {
	if p := f.page(id); p != nil {
		return p, nil
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (f *fakeClient) Update(_ context.Context, id, title, body string, currentVersion int) (*domain.RemotePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	if p.Version != currentVersion {
		return nil, &domain.ConflictError{ID: id, Version: currentVersion}
	}
	p.Title = title
	p.Body = body
	p.Version++
	cp := *p
	return &cp, nil
}

func (f *fakeClient) Delete(_ context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[id]; !ok {
		return 404, nil
	}
	delete(f.pages, id)
	return f.deleteStatus, nil
}

func (f *fakeClient) FindByTitle(_ context.Context, space, title string) (*domain.RemotePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pages {
		if p.SpaceKey == space && p.Title == title {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{ID: space + "/" + title}
}

// testEnv wires the commands to a fake client and in-memory stores.
type testEnv struct {
	client   *fakeClient
	history  *services.HistoryService
	settings *services.SettingsService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	client := newFakeClient()
	log := memory.NewPublishLog()
	settings := newSettings(t, map[string]string{
		"CONFREP_BASE_URL":  "https://example.atlassian.net/wiki",
		"CONFREP_USERNAME":  "me@example.com",
		"CONFREP_API_TOKEN": "token",
		"CONFREP_SPACE":     "OPS",
	})
	history := services.NewHistoryService(log)

	SetServices(Services{
		Report:   services.NewReportService(client, log),
		History:  history,
		Settings: settings,
		PageURL:  func(id string) string { return "https://example.atlassian.net/wiki/pages/" + id },
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return &testEnv{client: client, history: history, settings: settings}
}
