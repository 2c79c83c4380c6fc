package author

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interrupt is a scripted answer standing for Ctrl+C.
const interrupt = "^C"

// script answers survey prompts from a list. An empty answer to an input
// takes its default, as survey does.
type script struct {
	t        *testing.T
	answers  []string
	defaults []string
}

// ask ...
func (s *script) ask(q survey.Prompt, response any, opts ...survey.AskOpt) error {
	s.t.Helper()
	require.NotEmpty(s.t, s.answers, "ran out of answers")
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == interrupt {
		return terminal.InterruptErr
	}

	if in, ok := q.(*survey.Input); ok {
		s.defaults = append(s.defaults, in.Default)
		if answer == "" {
			answer = in.Default
		}
	}

	var o survey.AskOptions
	for _, opt := range opts {
		require.NoError(s.t, opt(&o))
	}
	for _, v := range o.Validators {
		if err := v(answer); err != nil {
			return err
		}
	}
	*response.(*string) = answer
	return nil
}

// newPrompt returns a prompt over a two sided die that answers from answers.
func newPrompt(t *testing.T, save func(*die.Die) error, answers ...string) (*Prompt, *script, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s := &script{t: t, answers: answers}
	p := NewPrompt(slog.New(slog.NewTextHandler(io.Discard, nil)), twoSided(), out, save)
	p.ask = s.ask
	return p, s, out
}

func TestPromptSetValueUsesSelection(t *testing.T) {
	p, s, _ := newPrompt(t, nil,
		actionSelect, "1",
		actionValue, "", "4",
		actionQuit,
	)
	require.NoError(t, p.Run())

	assert.Equal(t, []string{"-1", "1", "0"}, s.defaults, "the side index defaults to the selection")
	assert.Equal(t, []int{1, 4}, p.editor.Die().Values())
	assert.Empty(t, s.answers)
}

func TestPromptDeselect(t *testing.T) {
	p, _, _ := newPrompt(t, nil, actionSelect, "0", actionDeselect, actionQuit)
	require.NoError(t, p.Run())
	assert.Equal(t, -1, p.editor.Selected())
}

func TestPromptPlaceUsesOrientation(t *testing.T) {
	p, _, out := newPrompt(t, nil,
		actionOrientation, "180, 0, 0",
		actionPlace, "0, 1, 0",
		actionPlace, "(1 0 0)",
		actionQuery,
		actionQuit,
	)
	require.NoError(t, p.Run())

	assert.Contains(t, out.String(), "Placed side 1.")
	assert.Contains(t, out.String(), "Placed side 2.")
	assert.Contains(t, out.String(), "Current value:")
	require.Equal(t, 3, p.editor.Die().Len())
	assertVec(t, mgl64.Vec3{1, 0, 0}, p.editor.Die().Sides[2].Normal)
}

func TestPromptSave(t *testing.T) {
	var saved *die.Die
	p, _, out := newPrompt(t, func(d *die.Die) error {
		saved = d
		return nil
	}, actionFlipAll, actionSave, actionQuit)
	require.NoError(t, p.Run())

	require.NotNil(t, saved)
	assert.Equal(t, 6, saved.CurrentValueUp(die.Identity()))
	assert.Contains(t, out.String(), "Saved.")
}

func TestPromptSaveUnavailable(t *testing.T) {
	p, _, out := newPrompt(t, nil, actionSave, actionQuit)
	assert.EqualError(t, p.apply(actionSave), "saving is not available")

	require.NoError(t, p.Run())
	assert.Contains(t, out.String(), "saving is not available")
}

func TestPromptReportsErrors(t *testing.T) {
	p, _, out := newPrompt(t, func(*die.Die) error {
		return errors.New("disk full")
	},
		actionRemove, "9",
		actionNormal, "0", "0, -1, 0",
		actionSave,
		actionQuit,
	)
	require.NoError(t, p.Run())

	assert.Contains(t, out.String(), ErrIndexOutOfRange.Error())
	assert.Contains(t, out.String(), ErrDuplicateNormal.Error())
	assert.Contains(t, out.String(), "disk full")
	assert.Equal(t, 2, p.editor.Die().Len())
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	p, _, _ := newPrompt(t, nil, "x")
	_, err := p.askInt("Side index", 0)
	assert.Error(t, err)

	p, _, _ = newPrompt(t, nil, "1, 2")
	_, err = p.askVec3("Local normal")
	assert.Error(t, err)
}

func TestPromptInterrupt(t *testing.T) {
	p, _, _ := newPrompt(t, nil, interrupt)
	assert.NoError(t, p.Run())

	p, _, _ = newPrompt(t, nil, actionSelect, interrupt)
	assert.NoError(t, p.Run())
	assert.Equal(t, -1, p.editor.Selected())
}
