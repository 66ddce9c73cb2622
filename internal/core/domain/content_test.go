package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentUnit_Kinds(t *testing.T) {
	tests := []struct {
		unit ContentUnit
		want UnitKind
	}{
		{Image{}, KindImage},
		{Table{}, KindTable},
		{ActionItem{}, KindActionItem},
		{Decision{}, KindDecision},
		{Status{}, KindStatus},
		{Message{}, KindMessage},
		{Mention{}, KindMention},
		{Link{}, KindLink},
		{Heading{}, KindHeading},
		{Paragraph{}, KindParagraph},
		{List{}, KindList},
		{Layout{}, KindLayout},
		{Expand{}, KindExpand},
		{CodeSnippet{}, KindCodeSnippet},
		{TableOfContents{}, KindTableOfContents},
		{ChildPagesList{}, KindChildPagesList},
		{TaskReport{}, KindTaskReport},
		{PagePropertiesReport{}, KindPagePropertiesReport},
		{ChangeHistory{}, KindChangeHistory},
		{ContributionsSummary{}, KindContributionsSummary},
		{Iframe{}, KindIframe},
		{Divider{}, KindDivider},
		{Quote{}, KindQuote},
		{Date{}, KindDate},
		{Anchor{}, KindAnchor},
		{Emoticon{}, KindEmoticon},
		{Markdown{}, KindMarkdown},
		{JiraIssues{}, KindJiraIssues},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.Kind())
		})
	}
}

func TestLayoutType_Cells(t *testing.T) {
	assert.Equal(t, 1, LayoutSingle.Cells())
	assert.Equal(t, 2, LayoutTwoEqual.Cells())
	assert.Equal(t, 2, LayoutTwoLeftSidebar.Cells())
	assert.Equal(t, 2, LayoutTwoRightSidebar.Cells())
	assert.Equal(t, 3, LayoutThreeEqual.Cells())
	assert.Equal(t, 3, LayoutThreeWithSidebars.Cells())
	assert.Equal(t, 0, LayoutType("four_equal").Cells())
}

func TestStatusColour_IsValid(t *testing.T) {
	assert.True(t, StatusGreen.IsValid())
	assert.False(t, StatusColour("Orange").IsValid())
}

func TestMessageType_IsValid(t *testing.T) {
	for _, mt := range []MessageType{MessageInfo, MessageNote, MessageSuccess, MessageWarning, MessageError} {
		assert.True(t, mt.IsValid(), mt)
	}
	assert.False(t, MessageType("tip").IsValid())
}

func TestCredentials_IsComplete(t *testing.T) {
	assert.True(t, Credentials{BaseURL: "https://x", Username: "u", APIToken: "t"}.IsComplete())
	assert.False(t, Credentials{BaseURL: "https://x", Username: "u"}.IsComplete())
	assert.False(t, Credentials{BaseURL: " ", Username: "u", APIToken: "t"}.IsComplete())
}
