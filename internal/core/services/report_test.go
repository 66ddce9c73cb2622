package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
)

type createCall struct {
	space, title, parentID, body string
}

type updateCall struct {
	id, title, body string
	version         int
}

// fakeClient is an in-memory ContentClient that records every call.
type fakeClient struct {
	pages map[string]*domain.RemotePage

	findErr   error
	getErr    error
	updateErr error

	lookups []string
	gets    []string
	creates []createCall
	updates []updateCall
	deletes []string

	deleteStatus int
}

var _ driven.ContentClient = (*fakeClient)(nil)

func newFakeClient(pages ...*domain.RemotePage) *fakeClient {
	c := &fakeClient{pages: map[string]*domain.RemotePage{}, deleteStatus: 204}
	for _, p := range pages {
		c.pages[p.ID] = p
	}
	return c
}

func (c *fakeClient) writes() int {
	return len(c.creates) + len(c.updates) + len(c.deletes)
}

func (c *fakeClient) calls() int {
	return len(c.lookups) + len(c.gets) + c.writes()
}

func (c *fakeClient) Create(_ context.Context, space, title, parentID, body string) (*domain.RemotePage, error) {
	c.creates = append(c.creates, createCall{space, title, parentID, body})
	page := &domain.RemotePage{ID: "new-1", SpaceKey: space, Title: title, Version: 1, Body: body, ParentID: parentID}
	c.pages[page.ID] = page
	return page, nil
}

func (c *fakeClient) Get(_ context.Context, id string) (*domain.RemotePage, error) {
	c.gets = append(c.gets, id)
	if c.getErr != nil {
		return nil, c.getErr
	}
	page, ok := c.pages[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	cp := *page
	return &cp, nil
}

func (c *fakeClient) Update(_ context.Context, id, title, body string, version int) (*domain.RemotePage, error) {
	c.updates = append(c.updates, updateCall{id, title, body, version})
	if c.updateErr != nil {
		return nil, c.updateErr
	}
	page := c.pages[id]
	page.Title = title
	page.Body = body
	page.Version = version + 1
	cp := *page
	return &cp, nil
}

func (c *fakeClient) Delete(_ context.Context, id string) (int, error) {
	c.deletes = append(c.deletes, id)
	return c.deleteStatus, nil
}

func (c *fakeClient) FindByTitle(_ context.Context, space, title string) (*domain.RemotePage, error) {
	c.lookups = append(c.lookups, space+"/"+title)
	if c.findErr != nil {
		return nil, c.findErr
	}
	for _, p := range c.pages {
		if p.SpaceKey == space && p.Title == title {
			// Lookups return a summary without the body.
			return &domain.RemotePage{ID: p.ID, SpaceKey: p.SpaceKey, Title: p.Title, Version: p.Version}, nil
		}
	}
	return nil, &domain.NotFoundError{ID: space + "/" + title}
}

type failingLog struct{}

func (failingLog) Record(context.Context, domain.PublishRecord) error { return errors.New("disk full") }
func (failingLog) List(context.Context, int) ([]domain.PublishRecord, error) {
	return nil, nil
}
func (failingLog) ListByPage(context.Context, string) ([]domain.PublishRecord, error) {
	return nil, nil
}

func existingPage() *domain.RemotePage {
	return &domain.RemotePage{ID: "42", SpaceKey: "ENG", Title: "Weekly", Version: 5, Body: "<p>A</p>"}
}

func decideWith(answer bool, asked *int) domain.DecisionFunc {
	return func(_ context.Context, _ *domain.RemotePage) (bool, error) {
		*asked++
		return answer, nil
	}
}

func TestReportService_Render(t *testing.T) {
	svc := NewReportService(nil, nil)

	out, err := svc.Render([]domain.ContentUnit{
		domain.Heading{Level: 1, Text: "Report"},
		domain.Paragraph{Text: "Body"},
	})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Report</h1><p>Body</p>", out)
}

func TestReportService_Render_Malformed(t *testing.T) {
	svc := NewReportService(nil, nil)

	_, err := svc.Render([]domain.ContentUnit{domain.Table{Rows: [][]string{{"<b>unclosed"}}}})
	assert.ErrorIs(t, err, domain.ErrMalformedContent)
}

func TestPublish_CreatesWhenAbsent(t *testing.T) {
	client := newFakeClient()
	history := memory.NewPublishLog()
	svc := NewReportService(client, history)

	result, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space:    "ENG",
		Title:    "Weekly",
		ParentID: "7",
		Units:    []domain.ContentUnit{domain.Paragraph{Text: "A"}, domain.Paragraph{Text: "B"}},
		Body:     "<hr />",
		Policy:   domain.NeverOverwrite,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeCreated, result.Outcome)
	require.Len(t, client.creates, 1)
	assert.Equal(t, createCall{"ENG", "Weekly", "7", "<p>A</p><p>B</p><hr />"}, client.creates[0])
	assert.Empty(t, client.updates)
	assert.Equal(t, []string{"ENG/Weekly"}, client.lookups)

	records, err := history.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new-1", records[0].PageID)
	assert.Equal(t, domain.OutcomeCreated, records[0].Outcome)
	assert.NotEmpty(t, records[0].ID)
}

func TestPublish_DeclineLeavesPageUntouched(t *testing.T) {
	client := newFakeClient(existingPage())
	history := memory.NewPublishLog()
	svc := NewReportService(client, history)

	asked := 0
	result, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space:  "ENG",
		Title:  "Weekly",
		Units:  []domain.ContentUnit{domain.Paragraph{Text: "B"}},
		Policy: domain.AskCaller,
		Decide: decideWith(false, &asked),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, asked)
	assert.Equal(t, domain.OutcomeNotModified, result.Outcome)
	assert.Equal(t, "42", result.Page.ID)
	assert.Zero(t, client.writes())

	records, _ := history.List(context.Background(), 10)
	assert.Empty(t, records)
}

func TestPublish_NeverOverwrite(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	result, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.NeverOverwrite,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotModified, result.Outcome)
	assert.Zero(t, client.writes())
}

func TestPublish_ConfirmRefetchesAndSendsLatestVersion(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	asked := 0
	result, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space:  "ENG",
		Title:  "Weekly",
		Units:  []domain.ContentUnit{domain.Paragraph{Text: "B"}},
		Policy: domain.AskCaller,
		Decide: decideWith(true, &asked),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeUpdated, result.Outcome)
	assert.Equal(t, []string{"42"}, client.gets)
	require.Len(t, client.updates, 1)
	assert.Equal(t, updateCall{"42", "Weekly", "<p>B</p>", 5}, client.updates[0])
	assert.Empty(t, client.creates)
	assert.Equal(t, 6, result.Page.Version)
}

func TestPublish_UsesVersionFromFetchNotLookup(t *testing.T) {
	page := existingPage()
	client := newFakeClient(page)
	svc := NewReportService(client, nil)

	// Another writer bumps the version between lookup and fetch.
	decide := func(_ context.Context, _ *domain.RemotePage) (bool, error) {
		page.Version = 9
		return true, nil
	}

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.AskCaller, Decide: decide,
	})
	require.NoError(t, err)
	require.Len(t, client.updates, 1)
	assert.Equal(t, 9, client.updates[0].version)
}

func TestPublish_AppendMode(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space:  "ENG",
		Title:  "Weekly",
		Units:  []domain.ContentUnit{domain.Paragraph{Text: "B"}},
		Policy: domain.AlwaysOverwrite,
		Mode:   domain.ModeAppend,
	})
	require.NoError(t, err)
	require.Len(t, client.updates, 1)
	assert.Equal(t, "<p>A</p><p>B</p>", client.updates[0].body)
}

func TestPublish_AskWithoutDecisionFails(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>",
	})
	assert.ErrorIs(t, err, domain.ErrDecisionRequired)
	assert.Zero(t, client.calls())
}

func TestPublish_MalformedFailsBeforeNetwork(t *testing.T) {
	client := newFakeClient()
	svc := NewReportService(client, nil)

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>unclosed", Policy: domain.AlwaysOverwrite,
	})
	require.Error(t, err)

	var mErr *domain.MalformedContentError
	assert.True(t, errors.As(err, &mErr))
	assert.Zero(t, client.calls())
}

func TestPublish_LookupFailurePropagates(t *testing.T) {
	client := newFakeClient()
	client.findErr = &domain.TransportError{Op: "GET", URL: "x", Err: context.DeadlineExceeded}
	svc := NewReportService(client, nil)

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.AlwaysOverwrite,
	})
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.Zero(t, client.writes())
}

func TestPublish_DecisionErrorPropagates(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	boom := errors.New("stdin closed")
	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.AskCaller,
		Decide: func(context.Context, *domain.RemotePage) (bool, error) { return false, boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, client.writes())
}

func TestPublish_ConflictIsNotRetried(t *testing.T) {
	client := newFakeClient(existingPage())
	client.updateErr = &domain.ConflictError{ID: "42", Version: 5}
	svc := NewReportService(client, nil)

	_, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.AlwaysOverwrite,
	})
	assert.True(t, domain.IsConflict(err))
	assert.Len(t, client.updates, 1)
}

func TestPublish_InvalidInput(t *testing.T) {
	client := newFakeClient()
	svc := NewReportService(client, nil)
	ctx := context.Background()

	tests := []driving.PublishRequest{
		{Title: "T", Policy: domain.AlwaysOverwrite},
		{Space: "S", Policy: domain.AlwaysOverwrite},
		{Space: "S", Title: "T", Policy: "sometimes"},
		{Space: "S", Title: "T", Policy: domain.AlwaysOverwrite, Mode: "prepend"},
	}
	for _, req := range tests {
		_, err := svc.Publish(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, client.calls())
}

func TestPublish_NotConfigured(t *testing.T) {
	svc := NewReportService(nil, nil)
	_, err := svc.Publish(context.Background(), driving.PublishRequest{Space: "S", Title: "T"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestPublish_HistoryFailureDoesNotFailPublish(t *testing.T) {
	client := newFakeClient()
	svc := NewReportService(client, failingLog{})

	result, err := svc.Publish(context.Background(), driving.PublishRequest{
		Space: "ENG", Title: "Weekly", Body: "<p>B</p>", Policy: domain.AlwaysOverwrite,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreated, result.Outcome)
}

func TestUpdate_AppendsByDefault(t *testing.T) {
	client := newFakeClient(existingPage())
	history := memory.NewPublishLog()
	svc := NewReportService(client, history)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }

	result, err := svc.Update(context.Background(), driving.UpdateRequest{
		PageID: "42",
		Units:  []domain.ContentUnit{domain.Paragraph{Text: "B"}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeUpdated, result.Outcome)
	assert.Empty(t, client.lookups)
	require.Len(t, client.updates, 1)
	assert.Equal(t, updateCall{"42", "Weekly", "<p>A</p><p>B</p>", 5}, client.updates[0])

	records, _ := history.ListByPage(context.Background(), "42")
	require.Len(t, records, 1)
	assert.Equal(t, 6, records[0].Version)
	assert.Equal(t, "ENG", records[0].SpaceKey)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), records[0].PublishedAt)
}

func TestUpdate_ReplaceAndRename(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)

	_, err := svc.Update(context.Background(), driving.UpdateRequest{
		PageID: "42",
		Title:  "Weekly (final)",
		Body:   "<p>C</p>",
		Mode:   domain.ModeReplace,
	})
	require.NoError(t, err)
	require.Len(t, client.updates, 1)
	assert.Equal(t, updateCall{"42", "Weekly (final)", "<p>C</p>", 5}, client.updates[0])
}

func TestUpdate_MalformedExistingBodyBlocksWrite(t *testing.T) {
	page := existingPage()
	page.Body = "<p>broken"
	client := newFakeClient(page)
	svc := NewReportService(client, nil)

	_, err := svc.Update(context.Background(), driving.UpdateRequest{PageID: "42", Body: "<p>B</p>"})
	assert.ErrorIs(t, err, domain.ErrMalformedContent)
	assert.Empty(t, client.updates)
}

func TestUpdate_MissingPage(t *testing.T) {
	client := newFakeClient()
	svc := NewReportService(client, nil)

	_, err := svc.Update(context.Background(), driving.UpdateRequest{PageID: "404", Body: "<p>B</p>"})
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, client.updates)
}

func TestReportService_GetAndDelete(t *testing.T) {
	client := newFakeClient(existingPage())
	svc := NewReportService(client, nil)
	ctx := context.Background()

	page, err := svc.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "<p>A</p>", page.Body)

	status, err := svc.Delete(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 204, status)
	assert.Equal(t, []string{"42"}, client.deletes)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Delete(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
