// Package roster decodes the enriched member roster and merges it with the
// per-member speech payload into the metadata the detail views display.
package roster

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Design-for-Changes/visualization/internal/models"
)

// NamePlaceholder is rendered when neither payload nor roster nor slug can
// name the member.
const NamePlaceholder = "氏名不明"

// ParseMembers accepts both roster payload shapes: a bare array of profiles
// or an object wrapping it under "members".
func ParseMembers(data []byte) ([]models.MemberProfile, error) {
	var bare []models.MemberProfile
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Members []models.MemberProfile `json:"members"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode roster payload: %w", err)
	}
	return wrapped.Members, nil
}

// Find returns the first roster entry with the requested slug, or nil.
// Slugs are assumed unique; first match wins.
func Find(members []models.MemberProfile, slug string) *models.MemberProfile {
	for i := range members {
		if members[i].Slug == slug {
			return &members[i]
		}
	}
	return nil
}

// ParsePlatform maps the free-form platform strings in the roster file onto
// the enumerated identifiers the views key their icon table with.
func ParsePlatform(raw string) models.Platform {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "x", "twitter":
		return models.PlatformX
	case "facebook", "fb":
		return models.PlatformFacebook
	case "instagram":
		return models.PlatformInstagram
	case "youtube":
		return models.PlatformYouTube
	case "line":
		return models.PlatformLine
	case "tiktok":
		return models.PlatformTikTok
	default:
		return models.PlatformOther
	}
}

// SocialsByPlatform builds the typed platform -> URL mapping once from the
// raw list. The first URL per platform wins; entries without a URL are
// dropped.
func SocialsByPlatform(links []models.SocialLink) map[models.Platform]string {
	out := make(map[models.Platform]string, len(links))
	for _, link := range links {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		platform := ParsePlatform(link.Platform)
		if _, ok := out[platform]; !ok {
			out[platform] = url
		}
	}
	return out
}

// Display is the merged member metadata a detail page renders.
type Display struct {
	Name         string
	Kana         string
	Party        string
	Chamber      string
	Homepage     string
	ProfileURL   string
	Socials     map[models.Platform]string
	LeagueCount int
	Leagues     []string
	HasProfile  bool
}

// Merge combines the speech-history payload with the roster entry. Either
// side may be nil: a missing profile degrades to payload-only metadata, and
// a missing payload (the 404 fallback path) still surfaces everything the
// roster knows, so league lists and counts appear even before a member has
// registered speeches.
func Merge(history *models.MemberSpeeches, profile *models.MemberProfile, slug string) Display {
	d := Display{Name: NamePlaceholder}

	if slug != "" {
		d.Name = slug
	}
	if profile != nil {
		d.HasProfile = true
		if profile.MemberName != "" {
			d.Name = profile.MemberName
		}
		d.Kana = profile.Kana
		d.Party = profile.Party
		d.Chamber = profile.Chamber
		d.Homepage = profile.Homepage
		d.ProfileURL = profile.ProfileURL
		d.Socials = SocialsByPlatform(profile.Socials)
		d.LeagueCount = profile.DisabilityLeagueCount
		d.Leagues = profile.DisabilityLeagues
		if d.LeagueCount == 0 {
			d.LeagueCount = len(profile.DisabilityLeagues)
		}
	}
	if history != nil {
		if history.MemberName != "" {
			d.Name = history.MemberName
		}
		if history.Kana != "" {
			d.Kana = history.Kana
		}
	}
	return d
}
