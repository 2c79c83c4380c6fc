// Package author edits the side table of a die. Besides editing sides by
// index, normals can be placed from surface hits under the die's current
// orientation.
package author

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/internal"
)

var (
	ErrIndexOutOfRange  = errors.New("side index out of range")
	ErrNoSelection      = errors.New("no side selected")
	ErrDuplicateNormal  = errors.New("a side with this normal already exists")
	ErrDegenerateNormal = errors.New("normal has no direction")
	ErrNoSide           = errors.New("no side has this normal")
)

// Editor applies authoring commands to a die and tracks the selected side.
type Editor struct {
	d        *die.Die
	selected int
}

// NewEditor returns an editor working directly on d. A nil die starts empty.
func NewEditor(d *die.Die) *Editor {
	if d == nil {
		d = die.New()
	}
	return &Editor{d: d, selected: -1}
}

// Die ...
func (e *Editor) Die() *die.Die {
	return e.d
}

// Selected returns the selected index, or -1.
func (e *Editor) Selected() int {
	return e.selected
}

// Select ...
func (e *Editor) Select(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.selected = i
	return nil
}

// Deselect ...
func (e *Editor) Deselect() {
	e.selected = -1
}

// Add appends a side with value 0 and no normal, and returns its index.
func (e *Editor) Add() int {
	e.d.Sides = append(e.d.Sides, die.Side{})
	return len(e.d.Sides) - 1
}

// Remove deletes the side at i. A selection after i moves with its side and is
// clamped to the last remaining side.
func (e *Editor) Remove(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.d.Sides = slices.Delete(e.d.Sides, i, i+1)
	if i < e.selected {
		e.selected--
	}
	if e.selected >= len(e.d.Sides) {
		e.selected = len(e.d.Sides) - 1
	}
	return nil
}

// Flip ...
func (e *Editor) Flip(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.d.Sides[i] = e.d.Sides[i].Flipped()
	return nil
}

// FlipAll negates every normal.
func (e *Editor) FlipAll() {
	e.d.Sides = lo.Map(e.d.Sides, func(s die.Side, _ int) die.Side {
		return s.Flipped()
	})
}

// SetValue ...
func (e *Editor) SetValue(i, value int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.d.Sides[i].Value = value
	return nil
}

// SetNormal sets the local normal of side i. The normal is normalised and may
// not duplicate the normal of another side.
func (e *Editor) SetNormal(i int, normal mgl64.Vec3) error {
	if err := e.check(i); err != nil {
		return err
	}
	n, err := unit(normal)
	if err != nil {
		return err
	}
	if j := e.FindSide(n); j >= 0 && j != i {
		return fmt.Errorf("side %d: %w", j, ErrDuplicateNormal)
	}
	e.d.Sides[i].Normal = n
	return nil
}

// FindSide returns the index of the first side whose normal is within
// internal.DuplicateAngle degrees of the local normal, or -1.
func (e *Editor) FindSide(normal mgl64.Vec3) int {
	_, i, ok := lo.FindIndexOf(e.d.Sides, func(s die.Side) bool {
		return die.Angle(s.Normal, normal) < internal.DuplicateAngle
	})
	if !ok {
		return -1
	}
	return i
}

// Reassign points the selected side at a surface normal hit in world space.
// It fails if nothing is selected or if some side already has that normal.
func (e *Editor) Reassign(world mgl64.Vec3, orientation mgl64.Quat) error {
	if e.check(e.selected) != nil {
		return ErrNoSelection
	}
	n, err := local(orientation, world)
	if err != nil {
		return err
	}
	if j := e.FindSide(n); j >= 0 {
		return fmt.Errorf("side %d: %w", j, ErrDuplicateNormal)
	}
	e.d.Sides[e.selected].Normal = n
	return nil
}

// Place records a surface normal hit in world space as a side. A side that
// already has the normal is reused; otherwise a new side is appended. The index
// of the side is returned.
func (e *Editor) Place(world mgl64.Vec3, orientation mgl64.Quat) (int, error) {
	n, err := local(orientation, world)
	if err != nil {
		return -1, err
	}
	i := e.FindSide(n)
	if i < 0 {
		i = e.Add()
	}
	e.d.Sides[i].Normal = n
	return i, nil
}

// Pick selects the side whose normal matches a surface normal hit in world
// space.
func (e *Editor) Pick(world mgl64.Vec3, orientation mgl64.Quat) (int, error) {
	n, err := local(orientation, world)
	if err != nil {
		return -1, err
	}
	i := e.FindSide(n)
	if i < 0 {
		return -1, ErrNoSide
	}
	e.selected = i
	return i, nil
}

// check ...
func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.d.Sides) {
		return fmt.Errorf("index %d of %d: %w", i, len(e.d.Sides), ErrIndexOutOfRange)
	}
	return nil
}

// unit ...
func unit(v mgl64.Vec3) (mgl64.Vec3, error) {
	n, ok := die.Unit(v)
	if !ok {
		return mgl64.Vec3{}, ErrDegenerateNormal
	}
	return n, nil
}

// local brings a world space hit normal into the die's frame as a unit vector.
func local(orientation mgl64.Quat, world mgl64.Vec3) (mgl64.Vec3, error) {
	n, err := unit(world)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return unit(die.Local(orientation, n))
}
