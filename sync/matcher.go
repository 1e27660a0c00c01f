// ABOUTME: Deduplication for imported mentions and influencers
// ABOUTME: Matches records already stored for the user so re-running an import adds nothing new
package sync

import (
	"strings"

	"github.com/harperreed/socialpulse/models"
)

// MentionMatcher finds stored mentions by platform, post URL and content.
type MentionMatcher struct {
	byKey map[string]*models.Mention
}

func NewMentionMatcher(mentions []models.Mention) *MentionMatcher {
	m := &MentionMatcher{byKey: make(map[string]*models.Mention)}
	for i := range mentions {
		m.Add(&mentions[i])
	}
	return m
}

func mentionKey(mention *models.Mention) string {
	return normalize(mention.Platform) + "|" + normalize(mention.PostURL) + "|" + normalize(mention.Content)
}

func (m *MentionMatcher) FindMatch(mention *models.Mention) (*models.Mention, bool) {
	existing, found := m.byKey[mentionKey(mention)]
	return existing, found
}

// Add records a mention so later lookups in the same run see it.
func (m *MentionMatcher) Add(mention *models.Mention) {
	m.byKey[mentionKey(mention)] = mention
}

// InfluencerMatcher finds stored influencers by platform and handle.
type InfluencerMatcher struct {
	byHandle map[string]*models.Influencer
}

func NewInfluencerMatcher(influencers []models.Influencer) *InfluencerMatcher {
	m := &InfluencerMatcher{byHandle: make(map[string]*models.Influencer)}
	for i := range influencers {
		m.Add(&influencers[i])
	}
	return m
}

func influencerKey(inf *models.Influencer) string {
	return normalize(inf.Platform) + "|" + normalizeHandle(inf.Handle)
}

func (m *InfluencerMatcher) FindMatch(inf *models.Influencer) (*models.Influencer, bool) {
	existing, found := m.byHandle[influencerKey(inf)]
	return existing, found
}

func (m *InfluencerMatcher) Add(inf *models.Influencer) {
	m.byHandle[influencerKey(inf)] = inf
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeHandle treats "@alex" and "alex" as the same account.
func normalizeHandle(handle string) string {
	return strings.TrimPrefix(normalize(handle), "@")
}
