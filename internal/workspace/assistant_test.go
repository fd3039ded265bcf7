package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistant_Generate(t *testing.T) {
	client := &stubAssist{result: "## Ideas"}
	editor := &bufferEditor{content: "intro"}
	a := NewAssistant(client, editor, nil, nil)

	a.OpenDialog()
	a.SetPrompt("some ideas")
	require.NoError(t, a.Generate(context.Background(), "some ideas"))

	assert.Equal(t, "intro\n\n## Ideas", editor.content)
	assert.Equal(t, "", a.Prompt())
	assert.False(t, a.DialogOpen())
	assert.False(t, a.Loading())
	assert.Equal(t, []Action{ActionGenerate}, client.calls)
}

func TestAssistant_GenerateEmptyPrompt(t *testing.T) {
	client := &stubAssist{result: "x"}
	a := NewAssistant(client, &bufferEditor{}, nil, nil)

	assert.ErrorIs(t, a.Generate(context.Background(), "  "), ErrEmptyPrompt)
	assert.Equal(t, 0, client.callCount())
}

func TestAssistant_FailureKeepsPrompt(t *testing.T) {
	client := &stubAssist{err: ErrRateLimited}
	editor := &bufferEditor{content: "body"}
	a := NewAssistant(client, editor, nil, nil)

	a.OpenDialog()
	a.SetPrompt("p")
	err := a.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, "body", editor.content)
	assert.Equal(t, "p", a.Prompt())
	assert.True(t, a.DialogOpen())
	assert.False(t, a.Loading(), "loading is cleared on failure")
}

func TestAssistant_SelectionAction(t *testing.T) {
	client := &stubAssist{result: "baz"}
	editor := &bufferEditor{content: "foo bar foo"}
	tb := &Toolbar{}
	a := NewAssistant(client, editor, tb, nil)

	tb.Update(StaticSelection{Text: "foo", Region: RegionPreview})
	require.NoError(t, a.RunToolbarAction(context.Background(), ActionImprove))

	assert.Equal(t, "baz bar foo", editor.content)
	assert.False(t, tb.Visible())
	assert.Equal(t, []string{"foo"}, client.inputs)
}

func TestAssistant_SelectionRequired(t *testing.T) {
	client := &stubAssist{result: "x"}
	tb := &Toolbar{}
	a := NewAssistant(client, &bufferEditor{content: "abc"}, tb, nil)

	for _, sel := range []Selection{{}, {Text: "abc", Region: RegionEditor}, {Text: " ", Region: RegionPreview}} {
		assert.ErrorIs(t, a.RunSelectionAction(context.Background(), ActionExpand, sel), ErrEmptySelection)
	}
	assert.Equal(t, 0, client.callCount())
}

func TestAssistant_BusyWhileLoading(t *testing.T) {
	client := &stubAssist{
		result:  "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	editor := &bufferEditor{content: "text"}
	a := NewAssistant(client, editor, nil, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.RunSelectionAction(context.Background(), ActionSummarize, Selection{Text: "text", Region: RegionPreview})
	}()
	<-client.started
	assert.True(t, a.Loading())

	assert.ErrorIs(t, a.Generate(context.Background(), "another"), ErrAssistantBusy)

	close(client.release)
	require.NoError(t, <-errCh)
	assert.False(t, a.Loading())
	assert.Equal(t, "done", editor.content)
	assert.Equal(t, 1, client.callCount())
}
