package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"momentum/internal/model"
)

func TestBackgroundModeSwitchKeepsBothValues(t *testing.T) {
	b := NewBackground(model.BackgroundSolid, "#7C0902")
	b.Custom.Sync("mountains")

	b.Select(model.BackgroundCustom)
	assert.Equal(t, model.BackgroundCustom, b.Selected())
	assert.Equal(t, "mountains", b.Custom.Value())

	b.Select(model.BackgroundSolid)
	assert.Equal(t, model.BackgroundSolid, b.Selected())
	assert.Equal(t, "#7C0902", b.Solid())
	assert.Equal(t, "mountains", b.Custom.Committed())
}

func TestBackgroundToggle(t *testing.T) {
	b := NewBackground(model.BackgroundSolid, "#121010")
	b.Toggle()
	assert.Equal(t, model.BackgroundCustom, b.Selected())
	b.Toggle()
	assert.Equal(t, model.BackgroundSolid, b.Selected())
	assert.Equal(t, "#121010", b.Solid())
}

func TestBackgroundSelectIgnoresUnknown(t *testing.T) {
	b := NewBackground(model.BackgroundCustom, "sea")
	b.Select("gradient")
	assert.Equal(t, model.BackgroundCustom, b.Selected())
}

func TestBackgroundCommitCustom(t *testing.T) {
	b := NewBackground(model.BackgroundSolid, "#2f2c5c")
	b.Select(model.BackgroundCustom)

	_, _, ok := b.CommitCustom()
	assert.False(t, ok, "nothing typed yet")

	for _, v := range []string{"b", "be", "bea", "beac", "beach"} {
		b.Custom.SetDraft(v)
	}
	assert.True(t, b.Custom.Dirty())

	typ, value, ok := b.CommitCustom()
	assert.True(t, ok)
	assert.Equal(t, model.BackgroundCustom, typ)
	assert.Equal(t, "beach", value)
	assert.False(t, b.Custom.Dirty())
	assert.Equal(t, "#2f2c5c", b.Solid())
}

func TestBackgroundLeavingCustomDiscardsDraft(t *testing.T) {
	b := NewBackground(model.BackgroundCustom, "forest")
	b.Custom.SetDraft("desert")
	b.Select(model.BackgroundSolid)
	assert.Equal(t, "forest", b.Custom.Value())
	assert.False(t, b.Custom.Editing())
}

func TestBackgroundPickSolid(t *testing.T) {
	b := NewBackground(model.BackgroundCustom, "forest")
	typ, value := b.PickSolid("#3E4125")
	assert.Equal(t, model.BackgroundSolid, typ)
	assert.Equal(t, "#3E4125", value)
	assert.Equal(t, model.BackgroundSolid, b.Selected())
	assert.Equal(t, "forest", b.Custom.Committed())
}

func TestNewBackgroundSeedsMatchingSlot(t *testing.T) {
	b := NewBackground(model.BackgroundCustom, "forest")
	assert.Equal(t, "#000000", b.Solid())
	assert.Equal(t, "forest", b.Custom.Value())

	b = NewBackground(model.BackgroundSolid, "#7C0902")
	assert.Equal(t, "#7C0902", b.Solid())
	assert.Equal(t, "", b.Custom.Value())
}

func TestBackgroundRevertRestoresBothSlots(t *testing.T) {
	b := NewBackground(model.BackgroundCustom, "forest")
	b.Sync(model.BackgroundSolid, "#2f2c5c")

	b.Select(model.BackgroundCustom)
	b.Custom.SetDraft("beach")
	_, _, ok := b.CommitCustom()
	assert.True(t, ok)
	b.PickSolid("#7C0902")
	b.Select(model.BackgroundCustom)

	b.Revert()
	assert.Equal(t, model.BackgroundCustom, b.Selected())
	assert.Equal(t, "forest", b.Custom.Committed())
	assert.False(t, b.Custom.Editing())
	assert.Equal(t, "#2f2c5c", b.Solid())
}
