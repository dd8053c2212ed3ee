package actions

import (
	"strings"
	"testing"

	"github.com/entrhq/scribby/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_Transforms(t *testing.T) {
	text := "58 y/o male, 3 days of dysuria.\nNo fever."

	for _, action := range Transforms() {
		t.Run(action.ID, func(t *testing.T) {
			prompt := BuildPrompt(Request{Action: action, SourceText: text})

			assert.Contains(t, prompt, action.Label)
			assert.Contains(t, prompt, text)
			assert.Equal(t, action.Label+" based on:\n"+text, prompt)
		})
	}
}

func TestBuildPrompt_FullNote(t *testing.T) {
	text := "Patient Details:\nName: Jane\nAge: 40\nReason for Visit: Other\nDetails:\n"

	prompt := BuildPrompt(Request{Action: FullNote, SourceText: text})

	assert.Contains(t, prompt, text)
	for _, section := range []string{"Subjective (HPI):", "Objective:", "Assessment:", "Plan:"} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, `"Not provided" or "Pending,"`)
	assert.Less(t, strings.Index(prompt, text), strings.Index(prompt, "Strictly, follow"))
	assert.NotContains(t, prompt, "based on:\n")
}

func TestBuildPrompt_EmptyText(t *testing.T) {
	prompt := BuildPrompt(Request{Action: Summarize})
	assert.Equal(t, "Summarize based on:\n", prompt)
}

func TestMessages(t *testing.T) {
	msgs := Messages(Request{Action: GenerateHPI, SourceText: "flank pain"})

	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, SystemPrompt, msgs[0].Content)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, "Generate HPI based on:\nflank pain", msgs[1].Content)
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("follow-up-recommendations")
	require.True(t, ok)
	assert.Equal(t, "Follow-Up Recommendations", a.Label)

	full, ok := Lookup("scribby")
	require.True(t, ok)
	assert.Equal(t, KindFullNote, full.Kind)

	_, ok = Lookup("Follow Up Recommendations")
	assert.False(t, ok)
}

func TestMenu(t *testing.T) {
	items := Menu()
	require.Len(t, items, len(Transforms())+1)

	assert.Equal(t, MenuItemIntake, items[0].ID)
	assert.True(t, items[0].OpensIntake())
	assert.Equal(t, ContextAll, items[0].Context)

	seen := map[string]bool{}
	for i, item := range items[1:] {
		assert.False(t, item.OpensIntake())
		assert.Equal(t, ContextSelection, item.Context)
		assert.Equal(t, Transforms()[i], item.Action, "menu item %s bound to wrong action", item.ID)
		assert.Equal(t, item.Action.Label, item.Title)
		assert.True(t, strings.HasPrefix(item.ID, "chatgpt-"))
		assert.False(t, seen[item.ID], "duplicate menu id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestLookupMenuItem(t *testing.T) {
	item, ok := LookupMenuItem("chatgpt-generate-hpi")
	require.True(t, ok)
	assert.Equal(t, GenerateHPI, item.Action)

	_, ok = LookupMenuItem("chatgpt-unknown")
	assert.False(t, ok)
}

func TestMenuFor(t *testing.T) {
	assert.Len(t, MenuFor(false), 1)
	assert.Len(t, MenuFor(true), len(Menu()))
}

func TestMenu_ReturnsCopy(t *testing.T) {
	items := Menu()
	items[0].Title = "changed"
	assert.NotEqual(t, "changed", Menu()[0].Title)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transform", KindTransform.String())
	assert.Equal(t, "full_note", KindFullNote.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
