package author

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/util"
)

const (
	actionSelect      = "Select side"
	actionDeselect    = "Clear selection"
	actionValue       = "Set value"
	actionFlip        = "Flip side"
	actionFlipAll     = "Flip all"
	actionAdd         = "Add side"
	actionRemove      = "Remove side"
	actionNormal      = "Set local normal"
	actionPlace       = "Place hit normal"
	actionReassign    = "Reassign selected side"
	actionPick        = "Pick side by hit normal"
	actionOrientation = "Set orientation"
	actionQuery       = "Show current value"
	actionSave        = "Save"
	actionQuit        = "Quit"
)

var actions = []string{
	actionSelect, actionDeselect, actionValue, actionFlip, actionFlipAll, actionAdd, actionRemove,
	actionNormal, actionPlace, actionReassign, actionPick,
	actionOrientation, actionQuery, actionSave, actionQuit,
}

// Prompt is an interactive terminal front end for an Editor. Hit normals are
// entered in world space and interpreted under the orientation set through the
// prompt, which starts out as the identity.
type Prompt struct {
	log    *slog.Logger
	editor *Editor
	out    io.Writer
	save   func(*die.Die) error
	opts   []survey.AskOpt
	ask    func(q survey.Prompt, response any, opts ...survey.AskOpt) error

	orientation mgl64.Quat
}

// NewPrompt creates a prompt. save is called by the save action and may be nil.
func NewPrompt(log *slog.Logger, editor *Editor, out io.Writer, save func(*die.Die) error, opts ...survey.AskOpt) *Prompt {
	return &Prompt{
		log:         log,
		editor:      editor,
		out:         out,
		save:        save,
		opts:        opts,
		ask:         survey.AskOne,
		orientation: die.Identity(),
	}
}

// Run shows the table and asks for actions until the user quits or interrupts.
func (p *Prompt) Run() error {
	for {
		p.println(Render(p.editor))

		var action string
		err := p.ask(&survey.Select{Message: "Action", Options: actions, PageSize: len(actions)}, &action, p.opts...)
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if action == actionQuit {
			return nil
		}

		if err = p.apply(action); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			p.println(text.Colourf("<red>%s</red>", err))
		}
	}
}

// apply ...
func (p *Prompt) apply(action string) error {
	e := p.editor
	switch action {
	case actionSelect:
		i, err := p.askInt("Side index", e.Selected())
		if err != nil {
			return err
		}
		return e.Select(i)
	case actionDeselect:
		e.Deselect()
	case actionValue:
		i, err := p.askInt("Side index", e.Selected())
		if err != nil {
			return err
		}
		v, err := p.askInt("Value", 0)
		if err != nil {
			return err
		}
		return e.SetValue(i, v)
	case actionFlip:
		i, err := p.askInt("Side index", e.Selected())
		if err != nil {
			return err
		}
		return e.Flip(i)
	case actionFlipAll:
		e.FlipAll()
	case actionAdd:
		p.println(text.Colourf("<green>Added side %d.</green>", e.Add()))
	case actionRemove:
		i, err := p.askInt("Side index", e.Selected())
		if err != nil {
			return err
		}
		return e.Remove(i)
	case actionNormal:
		i, err := p.askInt("Side index", e.Selected())
		if err != nil {
			return err
		}
		n, err := p.askVec3("Local normal")
		if err != nil {
			return err
		}
		return e.SetNormal(i, n)
	case actionPlace:
		n, err := p.askVec3("World hit normal")
		if err != nil {
			return err
		}
		i, err := e.Place(n, p.orientation)
		if err != nil {
			return err
		}
		p.println(text.Colourf("<green>Placed side %d.</green>", i))
	case actionReassign:
		n, err := p.askVec3("World hit normal")
		if err != nil {
			return err
		}
		return e.Reassign(n, p.orientation)
	case actionPick:
		n, err := p.askVec3("World hit normal")
		if err != nil {
			return err
		}
		_, err = e.Pick(n, p.orientation)
		return err
	case actionOrientation:
		v, err := p.askVec3("Euler angles in degrees (x, y, z)")
		if err != nil {
			return err
		}
		p.orientation = die.Euler(v[0], v[1], v[2])
	case actionQuery:
		p.println(text.Colourf("<white>Current value:</white> <green>%d</green>", e.Die().CurrentValueUp(p.orientation)))
	case actionSave:
		if p.save == nil {
			return errors.New("saving is not available")
		}
		if err := p.save(e.Die()); err != nil {
			return err
		}
		p.log.Info("Saved side table", "sides", e.Die().Len())
		p.println(text.Colourf("<green>Saved.</green>"))
	}
	return nil
}

// askInt ...
func (p *Prompt) askInt(message string, def int) (int, error) {
	var answer string
	err := p.ask(&survey.Input{Message: message, Default: strconv.Itoa(def)}, &answer,
		p.withValidator(func(ans any) error {
			_, err := strconv.Atoi(fmt.Sprint(ans))
			return err
		})...)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// askVec3 ...
func (p *Prompt) askVec3(message string) (mgl64.Vec3, error) {
	var answer string
	err := p.ask(&survey.Input{Message: message}, &answer,
		p.withValidator(func(ans any) error {
			_, err := util.ParseVec3(fmt.Sprint(ans))
			return err
		})...)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return util.ParseVec3(answer)
}

// withValidator ...
func (p *Prompt) withValidator(v survey.Validator) []survey.AskOpt {
	return append(slices.Clone(p.opts), survey.WithValidator(v))
}

// println ...
func (p *Prompt) println(s string) {
	_, _ = fmt.Fprintln(p.out, text.ANSI(s))
}
