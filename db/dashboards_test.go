// ABOUTME: Tests for dashboard, chat, NPS, monitoring and sync-state storage
package db

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/models"
)

func TestSaveAndLoadDashboards(t *testing.T) {
	db := setupTestDB(t)

	empty, err := LoadDashboards(db)
	require.NoError(t, err)
	assert.Empty(t, empty)

	store := analytics.NewStore()
	_, ok := store.AddWidget(analytics.DefaultDashboardID, analytics.WidgetSpec{Type: models.WidgetLine, Title: "Reach"})
	require.True(t, ok)
	store.CreateDashboard("Crisis")

	want := store.Dashboards()
	require.NoError(t, SaveDashboards(db, want))

	got, err := LoadDashboards(db)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboards differ after round trip (-want +got):\n%s", diff)
	}
}

func TestSaveDashboardReplacesWidgets(t *testing.T) {
	db := setupTestDB(t)

	d := analytics.DefaultDashboard()
	require.NoError(t, SaveDashboard(db, d, 0))

	d.Widgets = d.Widgets[:1]
	require.NoError(t, SaveDashboard(db, d, 0))

	got, err := LoadDashboards(db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Widgets, 1)
	assert.Equal(t, "w1", got[0].Widgets[0].ID)
}

func TestChatMessages(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, AppendChatMessage(db, "s1", models.ChatMessage{ID: 2, Role: models.RoleUser, Content: "hi", Timestamp: now}))
	require.NoError(t, AppendChatMessage(db, "s1", models.ChatMessage{ID: 1, Role: models.RoleAssistant, Content: "welcome", Timestamp: now}))
	require.NoError(t, AppendChatMessage(db, "s2", models.ChatMessage{ID: 1, Role: models.RoleAssistant, Content: "other", Timestamp: now}))

	msgs, err := ListChatMessages(db, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "welcome", msgs[0].Content)
	assert.Equal(t, "hi", msgs[1].Content)

	assert.Error(t, AppendChatMessage(db, "s1", models.ChatMessage{ID: 3, Role: "system", Content: "x", Timestamp: now}))
}

func TestNPSResponses(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, CreateNPSResponse(db, &models.NPSResponse{Score: 9, Source: "Email"}))
	assert.Error(t, CreateNPSResponse(db, &models.NPSResponse{Score: 11}))

	got, err := ListNPSResponses(db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Score)
	assert.Equal(t, "Email", got[0].Source)
}

func TestMentionsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	require.NoError(t, CreateMention(db, &models.Mention{UserID: "u1", Platform: "twitter", Content: "old", MentionDate: now.Add(-time.Hour)}))
	require.NoError(t, CreateMention(db, &models.Mention{UserID: "u1", Platform: "reddit", Content: "new", MentionDate: now}))
	require.NoError(t, CreateMention(db, &models.Mention{UserID: "u2", Platform: "twitter", Content: "theirs", MentionDate: now}))

	got, err := ListMentions(db, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Content)

	limited, err := ListMentions(db, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestInfluencers(t *testing.T) {
	db := setupTestDB(t)

	small := &models.Influencer{UserID: "u1", Name: "Small", Platform: "instagram", Handle: "@small", FollowerCount: 10}
	big := &models.Influencer{UserID: "u1", Name: "Big", Platform: "instagram", Handle: "@big", FollowerCount: 1000}
	require.NoError(t, CreateInfluencer(db, small))
	require.NoError(t, CreateInfluencer(db, big))

	require.NoError(t, SetInfluencerTracked(db, "u1", small.ID, true))
	assert.Error(t, SetInfluencerTracked(db, "u2", small.ID, true))

	got, err := ListInfluencers(db, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Big", got[0].Name)
	assert.False(t, got[0].IsTracked)
	assert.True(t, got[1].IsTracked)
}

func TestSyncState(t *testing.T) {
	db := setupTestDB(t)

	state, err := GetSyncState(db, "mentions")
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, UpdateSyncStatus(db, "mentions", SyncSyncing, nil))
	msg := "boom"
	require.NoError(t, UpdateSyncStatus(db, "influencers", SyncError, &msg))

	state, err = GetSyncState(db, "mentions")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, SyncSyncing, state.Status)
	assert.Nil(t, state.LastSyncTime)

	require.NoError(t, MarkSynced(db, "mentions", time.Now(), 3))
	state, err = GetSyncState(db, "mentions")
	require.NoError(t, err)
	assert.Equal(t, SyncIdle, state.Status)
	assert.NotNil(t, state.LastSyncTime)
	assert.Equal(t, 3, state.LastItems)
	assert.Nil(t, state.ErrorMessage)

	all, err := GetAllSyncStates(db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "influencers", all[0].Service)
	require.NotNil(t, all[0].ErrorMessage)
	assert.Equal(t, "boom", *all[0].ErrorMessage)
}
