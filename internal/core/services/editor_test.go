package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
)

type editorFixture struct {
	drafts  *mocks.MockDraftStore
	lock    *mocks.MockDistributedLock
	sources *mocks.MockSourceStore
	svc     driving.EditorService
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()
	n := 0
	keys := func() string {
		n++
		return fmt.Sprintf("key-%d", n)
	}
	f := &editorFixture{
		drafts:  mocks.NewMockDraftStore(),
		lock:    mocks.NewMockDistributedLock(),
		sources: mocks.NewMockSourceStore(),
	}
	sourceSvc := NewSourceService(f.sources, nil, nil)
	f.svc = NewEditorService(f.drafts, f.lock, sourceSvc, editor.NewControllerWithKeys(keys), EditorConfig{}, nil)
	return f
}

func TestEditorService_OpenDefaults(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	session, err := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.ModeForm, session.State.Mode)
	assert.Equal(t, domain.NewSourceDescriptor(), session.State.Model)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestEditorService_OpenWithDescriptor(t *testing.T) {
	f := newEditorFixture(t)
	d := validDescriptor()
	d.BackendFilters = append(d.BackendFilters, domain.NewFilterDescriptor())

	session, err := f.svc.Open(context.Background(), "admin", driving.OpenSessionRequest{Descriptor: &d})
	require.NoError(t, err)
	assert.Equal(t, "CoinAPI", session.State.Model.Name)
	assert.Len(t, session.State.Keys.BackendFilters, 1)
}

func TestEditorService_GetMissing(t *testing.T) {
	f := newEditorFixture(t)
	_, err := f.svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditorService_FormEditsPersist(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, err := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})
	require.NoError(t, err)

	_, err = f.svc.SetFields(ctx, session.ID, []driving.FieldUpdate{
		{Field: "name", Value: "CoinAPI"},
		{Field: "rate_limit", Value: "abc", Kind: "number"},
		{Field: "auth_required", Value: true, Kind: "checkbox"},
	})
	require.NoError(t, err)

	_, key, err := f.svc.AddItem(ctx, session.ID, "api_filters")
	require.NoError(t, err)
	assert.Equal(t, "key-1", key)

	_, err = f.svc.UpdateItem(ctx, session.ID, "api_filters", key, driving.ItemUpdate{Field: "options", Value: "usd, eur , "})
	require.NoError(t, err)

	_, err = f.svc.SetMapping(ctx, session.ID, "$.asset_id", "symbol")
	require.NoError(t, err)
	_, err = f.svc.SetHeader(ctx, session.ID, "Accept", "application/json")
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	m := got.State.Model
	assert.Equal(t, "CoinAPI", m.Name)
	assert.Nil(t, m.RateLimit)
	assert.True(t, m.AuthRequired)
	assert.Equal(t, []string{"usd", "eur"}, m.APIFilters[0].Options)
	assert.Equal(t, "symbol", m.Mapping["$.asset_id"])
	assert.Equal(t, "application/json", m.Headers["Accept"])

	_, err = f.svc.RemoveMapping(ctx, session.ID, "$.asset_id")
	require.NoError(t, err)
	_, err = f.svc.RemoveHeader(ctx, session.ID, "Accept")
	require.NoError(t, err)
	got, err = f.svc.RemoveItem(ctx, session.ID, "api_filters", "0")
	require.NoError(t, err)
	assert.Empty(t, got.State.Model.APIFilters)
	assert.Empty(t, got.State.Model.Mapping)
	assert.Empty(t, got.State.Model.Headers)
}

func TestEditorService_BatchIsAtomic(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, err := f.svc.SetFields(ctx, session.ID, []driving.FieldUpdate{
		{Field: "name", Value: "CoinAPI"},
		{Field: "bogus", Value: "x"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	got, _ := f.svc.Get(ctx, session.ID)
	assert.Empty(t, got.State.Model.Name)

	_, err = f.svc.SetFields(ctx, session.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEditorService_ListErrors(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, _, err := f.svc.AddItem(ctx, session.ID, "headers")
	assert.ErrorIs(t, err, domain.ErrUnknownList)

	_, err = f.svc.RemoveItem(ctx, session.ID, "api_filters", "0")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = f.svc.UpdateItem(ctx, session.ID, "backend_filters", "it_missing", driving.ItemUpdate{Field: "key", Value: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditorService_InvalidJSONIsInline(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, err := f.svc.SwitchMode(ctx, session.ID, domain.ModeJSON)
	require.NoError(t, err)
	_, err = f.svc.SetText(ctx, session.ID, "{not json")
	require.NoError(t, err)

	got, err := f.svc.SwitchMode(ctx, session.ID, domain.ModeForm)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeJSON, got.State.Mode)
	assert.Equal(t, domain.EditorErrorInvalidJSON, got.State.Error)
	assert.Equal(t, "{not json", got.State.Text)

	stored, _ := f.svc.Get(ctx, session.ID)
	assert.Equal(t, domain.EditorErrorInvalidJSON, stored.State.Error)
}

func TestEditorService_WrongMode(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, err := f.svc.SetText(ctx, session.ID, "{}")
	assert.ErrorIs(t, err, domain.ErrWrongMode)

	_, err = f.svc.SwitchMode(ctx, session.ID, domain.Mode("xml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEditorService_SubmitFromForm(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	d := validDescriptor()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{Descriptor: &d})

	source, err := f.svc.Submit(ctx, session.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "CoinAPI", source.Name)
	assert.Equal(t, 1, f.sources.Count())

	_, err = f.svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "session is discarded after submit")
	assert.False(t, f.lock.IsHeld(submitLockPrefix+session.ID))
}

func TestEditorService_SubmitFromJSONReparses(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, _ = f.svc.SwitchMode(ctx, session.ID, domain.ModeJSON)
	_, err := f.svc.SetText(ctx, session.ID, `{"name": "FromText", "endpoint": "https://example.com", "method": "POST"}`)
	require.NoError(t, err)

	source, err := f.svc.Submit(ctx, session.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "FromText", source.Name)
	assert.Equal(t, domain.MethodPost, source.Method)
}

func TestEditorService_SubmitInvalidJSONKeepsSession(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, _ = f.svc.SwitchMode(ctx, session.ID, domain.ModeJSON)
	_, _ = f.svc.SetText(ctx, session.ID, "{broken")

	_, err := f.svc.Submit(ctx, session.ID, "admin")
	var submitErr *editor.SubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.ErrorIs(t, err, domain.ErrInvalidJSON)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, got.Pending)
	assert.Equal(t, "{broken", got.State.Text)
	assert.Equal(t, 0, f.sources.Count())
}

func TestEditorService_SubmitValidationFailure(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, err := f.svc.Submit(ctx, session.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, got.Pending)
}

func TestEditorService_SubmitWhilePending(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	d := validDescriptor()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{Descriptor: &d})

	f.lock.Hold(submitLockPrefix+session.ID, time.Minute)

	_, err := f.svc.Submit(ctx, session.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrSubmissionPending)
	assert.Equal(t, 0, f.sources.Count())
}

func TestEditorService_SubmitLockError(t *testing.T) {
	f := newEditorFixture(t)
	f.lock.AcquireFn = func(string, time.Duration) (bool, error) {
		return false, errors.New("redis down")
	}
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	_, err := f.svc.Submit(ctx, session.ID, "admin")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSubmissionPending)
}

func TestEditorService_EditsAllowedWhilePending(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	session.Pending = true
	require.NoError(t, f.drafts.Save(ctx, session))

	got, err := f.svc.SetFields(ctx, session.ID, []driving.FieldUpdate{{Field: "name", Value: "still editable"}})
	require.NoError(t, err)
	assert.True(t, got.Pending)
	assert.Equal(t, "still editable", got.State.Model.Name)
}

func TestEditorService_Discard(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	require.NoError(t, f.svc.Discard(ctx, session.ID))
	assert.Equal(t, 0, f.drafts.Count())
	assert.ErrorIs(t, f.svc.Discard(ctx, session.ID), domain.ErrNotFound)
}

func TestEditorService_FailedSubmitKeepsEditsMadeMeanwhile(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	d := validDescriptor()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{Descriptor: &d})

	entered := make(chan struct{})
	release := make(chan struct{})
	f.sources.SaveFn = func(context.Context, *domain.Source) error {
		close(entered)
		<-release
		return errors.New("database unavailable")
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, session.ID, "admin")
		errCh <- err
	}()
	<-entered

	edited, err := f.svc.SetFields(ctx, session.ID, []driving.FieldUpdate{{Field: "name", Value: "edited during submit"}})
	require.NoError(t, err)
	assert.True(t, edited.Pending)

	close(release)
	require.Error(t, <-errCh)

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, got.Pending)
	assert.Equal(t, "edited during submit", got.State.Model.Name)
	assert.Equal(t, "https://rest.coinapi.io/v1/assets", got.State.Model.Endpoint)
}

func TestEditorService_ConcurrentEditsAllApply(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	session, _ := f.svc.Open(ctx, "admin", driving.OpenSessionRequest{})

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.svc.AddItem(ctx, session.ID, "api_filters")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := f.svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, got.State.Model.APIFilters, n)
	assert.Len(t, got.State.Keys.APIFilters, n)
}

func TestEditorService_SessionBusy(t *testing.T) {
	drafts := mocks.NewMockDraftStore()
	lock := mocks.NewMockDistributedLock()
	svc := NewEditorService(drafts, lock, NewSourceService(mocks.NewMockSourceStore(), nil, nil), nil,
		EditorConfig{SessionLockWait: 30 * time.Millisecond}, nil)
	ctx := context.Background()
	session, err := svc.Open(ctx, "admin", driving.OpenSessionRequest{})
	require.NoError(t, err)

	lock.Hold(sessionLockPrefix+session.ID, time.Minute)

	_, err = svc.SetFields(ctx, session.ID, []driving.FieldUpdate{{Field: "name", Value: "x"}})
	assert.ErrorIs(t, err, domain.ErrSessionBusy)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.State.Model.Name)
}
