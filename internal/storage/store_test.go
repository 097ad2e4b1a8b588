package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(NewMemoryBackend())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func doc(name string) types.Document {
	return types.Document{"personal": map[string]any{"name": name}}
}

func TestStore_FirstResumeBecomesActive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveResume(ctx, "main", doc("Jane")))
	require.NoError(t, s.SaveResume(ctx, "alt", doc("Janet")))

	active, err := s.GetActiveResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", active.Name)
	assert.Equal(t, "Jane", active.Data["personal"].(map[string]any)["name"])
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), active.UpdatedAt)
}

func TestStore_SaveResumeValidation(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveResume(context.Background(), "  ", doc("x")))
	assert.Error(t, s.SaveResume(context.Background(), "main", nil))
}

func TestStore_ListResumes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	list, err := s.ListResumes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.SaveResume(ctx, "zeta", doc("Z")))
	require.NoError(t, s.SaveResume(ctx, "alpha", doc("A")))

	list, err = s.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.False(t, list[0].Active)
	assert.Equal(t, "zeta", list[1].Name)
	assert.True(t, list[1].Active)
}

func TestStore_DeleteActiveResumeActivatesFirstRemaining(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveResume(ctx, "main", doc("Jane")))
	require.NoError(t, s.SaveResume(ctx, "b-side", doc("B")))
	require.NoError(t, s.SaveResume(ctx, "a-side", doc("A")))

	require.NoError(t, s.DeleteResume(ctx, "main"))
	name, err := s.ActiveResumeName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a-side", name)

	require.NoError(t, s.DeleteResume(ctx, "b-side"))
	name, err = s.ActiveResumeName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a-side", name)

	require.NoError(t, s.DeleteResume(ctx, "a-side"))
	name, err = s.ActiveResumeName(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	_, err = s.GetActiveResume(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_DeleteUnknownResume(t *testing.T) {
	err := newTestStore(t).DeleteResume(context.Background(), "ghost")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.Name)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_SetActiveResume(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveResume(ctx, "main", doc("Jane")))
	require.NoError(t, s.SaveResume(ctx, "alt", doc("Janet")))

	require.NoError(t, s.SetActiveResume(ctx, "alt"))
	name, err := s.ActiveResumeName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alt", name)

	err = s.SetActiveResume(ctx, "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
	name, _ = s.ActiveResumeName(ctx)
	assert.Equal(t, "alt", name)
}

func TestStore_Mappings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetMappings(ctx, "example.com")
	assert.True(t, errors.Is(err, ErrNotFound))

	m := mapping.New(
		mapping.Entry{Path: "personal.email", Patterns: []string{"id:applicant_email", "e-mail"}},
		mapping.Entry{Path: "personal.phone", Patterns: []string{"re:^cell"}},
	)
	require.NoError(t, s.SaveMappings(ctx, "example.com", m))
	require.NoError(t, s.SaveMappings(ctx, "acme.org", mapping.New()))

	got, err := s.GetMappings(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"personal.email", "personal.phone"}, got.Paths())
	patterns, _ := got.Get("personal.email")
	assert.Equal(t, []string{"id:applicant_email", "e-mail"}, patterns)

	domains, err := s.ListMappingDomains(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme.org", "example.com"}, domains)

	require.NoError(t, s.DeleteMappingsForDomain(ctx, "acme.org"))
	assert.True(t, errors.Is(s.DeleteMappingsForDomain(ctx, "acme.org"), ErrNotFound))
}

func TestStore_SaveMappingsRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	bad := mapping.New(mapping.Entry{Path: "personal.email", Patterns: []string{"re:("}})

	assert.Error(t, s.SaveMappings(context.Background(), "example.com", bad))
	assert.Error(t, s.SaveMappings(context.Background(), "", mapping.New()))
}

func TestStore_Settings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), settings)

	settings.AutofillOnLoad = true
	settings.AutofillDelay = 500
	require.NoError(t, s.SaveSettings(ctx, settings))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.AutofillOnLoad)
	assert.Equal(t, 500, got.AutofillDelay)

	settings.AutofillDelay = -1
	assert.Error(t, s.SaveSettings(ctx, settings))
}

func TestStore_APISettingsAndTokenUsage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	api, err := s.GetAPISettings(ctx)
	require.NoError(t, err)
	assert.False(t, api.Configured())
	assert.Equal(t, types.ConnectionUnknown, api.ConnectionStatus)

	require.NoError(t, s.SaveAPISettings(ctx, types.APISettings{Provider: "openai", APIKey: "sk-1", Model: "gpt-4", TokenUsage: 99}))

	total, err := s.AddTokenUsage(ctx, 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), total)
	total, err = s.AddTokenUsage(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	_, err = s.AddTokenUsage(ctx, -1)
	assert.Error(t, err)

	require.NoError(t, s.SetConnectionStatus(ctx, types.ConnectionConnected))
	api, err = s.GetAPISettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ConnectionConnected, api.ConnectionStatus)
	assert.Equal(t, int64(150), api.TokenUsage)

	// New credentials restart the counter.
	require.NoError(t, s.SaveAPISettings(ctx, types.APISettings{Provider: "openai", APIKey: "sk-2", Model: "gpt-4"}))
	api, err = s.GetAPISettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), api.TokenUsage)
	assert.Equal(t, "sk-2", api.APIKey)

	assert.Error(t, s.SaveAPISettings(ctx, types.APISettings{Provider: "anthropic"}))
}
