package roster_test

import (
	"testing"

	"github.com/Design-for-Changes/visualization/internal/models"
	"github.com/Design-for-Changes/visualization/internal/roster"
	"github.com/stretchr/testify/require"
)

func TestParseMembersBareArray(t *testing.T) {
	payload := `[{"slug":"yamadataro","member_name":"山田太郎"}]`
	members, err := roster.ParseMembers([]byte(payload))
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "yamadataro", members[0].Slug)
}

func TestParseMembersWrappedObject(t *testing.T) {
	payload := `{"members":[{"slug":"satohanako","member_name":"佐藤花子","party":"無所属"}]}`
	members, err := roster.ParseMembers([]byte(payload))
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "佐藤花子", members[0].MemberName)
}

func TestParseMembersInvalid(t *testing.T) {
	_, err := roster.ParseMembers([]byte(`"not a roster"`))
	require.Error(t, err)
}

func TestFindFirstMatchWins(t *testing.T) {
	members := []models.MemberProfile{
		{Slug: "a", MemberName: "最初"},
		{Slug: "b"},
		{Slug: "a", MemberName: "二番目"},
	}
	found := roster.Find(members, "a")
	require.NotNil(t, found)
	require.Equal(t, "最初", found.MemberName)

	require.Nil(t, roster.Find(members, "missing"))
}

func TestSocialsByPlatform(t *testing.T) {
	links := []models.SocialLink{
		{Platform: "Twitter", URL: "https://x.com/one"},
		{Platform: "x", URL: "https://x.com/two"},
		{Platform: "YouTube", URL: "https://youtube.com/@ch"},
		{Platform: "mystery", URL: "https://example.com"},
		{Platform: "facebook", URL: "   "},
	}

	socials := roster.SocialsByPlatform(links)
	require.Equal(t, "https://x.com/one", socials[models.PlatformX], "first URL per platform wins")
	require.Equal(t, "https://youtube.com/@ch", socials[models.PlatformYouTube])
	require.Equal(t, "https://example.com", socials[models.PlatformOther])
	require.NotContains(t, socials, models.PlatformFacebook)
}

func TestMergeHistoryFieldsWin(t *testing.T) {
	history := &models.MemberSpeeches{MemberName: "山田太郎", Kana: "やまだたろう"}
	profile := &models.MemberProfile{Slug: "yamadataro", MemberName: "山田　太郎", Party: "無所属"}

	d := roster.Merge(history, profile, "yamadataro")
	require.Equal(t, "山田太郎", d.Name)
	require.Equal(t, "やまだたろう", d.Kana)
	require.Equal(t, "無所属", d.Party)
	require.True(t, d.HasProfile)
}

func TestMergeFallbackPathKeepsProfile(t *testing.T) {
	// speech history returned 404 but the roster knows the member
	profile := &models.MemberProfile{
		Slug:              "satohanako",
		MemberName:        "佐藤花子",
		DisabilityLeagues: []string{"障害児福祉議連", "医療的ケア児支援議連"},
	}

	d := roster.Merge(nil, profile, "satohanako")
	require.Equal(t, "佐藤花子", d.Name)
	require.Len(t, d.Leagues, 2)
	require.Equal(t, 2, d.LeagueCount, "count derives from the list when absent")
	require.True(t, d.HasProfile)
}

func TestMergeNoProfileDegrades(t *testing.T) {
	history := &models.MemberSpeeches{MemberName: "山田太郎"}
	d := roster.Merge(history, nil, "yamadataro")
	require.Equal(t, "山田太郎", d.Name)
	require.False(t, d.HasProfile)
	require.Empty(t, d.Leagues)
}

func TestMergeSlugAndPlaceholderFallbacks(t *testing.T) {
	d := roster.Merge(nil, nil, "yamadataro")
	require.Equal(t, "yamadataro", d.Name)

	d = roster.Merge(nil, nil, "")
	require.Equal(t, roster.NamePlaceholder, d.Name)
}
