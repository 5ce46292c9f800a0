package editor

import "momentum/internal/model"

// Background is the background settings panel: a radio between solid and
// custom, a remembered solid colour, and the custom search field. The two
// mode values are kept apart so toggling the radio never loses either.
type Background struct {
	selected model.BackgroundType
	solid    string
	Custom   Field

	savedSolid  string
	savedCustom string
}

func NewBackground(typ model.BackgroundType, value string) Background {
	b := Background{
		selected:   model.BackgroundSolid,
		solid:      "#000000",
		Custom:     NewField(""),
		savedSolid: "#000000",
	}
	b.Sync(typ, value)
	return b
}

func (b Background) Selected() model.BackgroundType { return b.selected }
func (b Background) Solid() string                  { return b.solid }

// Select moves the radio. Nothing is committed and neither value changes.
// Leaving custom mode discards an unsaved search draft.
func (b *Background) Select(typ model.BackgroundType) {
	if typ != model.BackgroundSolid && typ != model.BackgroundCustom {
		return
	}
	if typ != b.selected && b.selected == model.BackgroundCustom {
		b.Custom.Discard()
	}
	b.selected = typ
}

// Toggle flips the radio.
func (b *Background) Toggle() {
	if b.selected == model.BackgroundSolid {
		b.Select(model.BackgroundCustom)
		return
	}
	b.Select(model.BackgroundSolid)
}

// PickSolid records a solid colour and returns the commit to propagate.
func (b *Background) PickSolid(color string) (model.BackgroundType, string) {
	b.Select(model.BackgroundSolid)
	b.solid = color
	return model.BackgroundSolid, color
}

// CommitCustom commits the search draft and returns the commit to propagate.
// ok is false when there was no draft to commit.
func (b *Background) CommitCustom() (typ model.BackgroundType, value string, ok bool) {
	if !b.Custom.Editing() {
		return "", "", false
	}
	value, _ = b.Custom.Commit()
	b.selected = model.BackgroundCustom
	return model.BackgroundCustom, value, true
}

// Sync stores a committed background in the slot for its mode, leaving the
// other mode's value as it was.
func (b *Background) Sync(typ model.BackgroundType, value string) {
	switch typ {
	case model.BackgroundSolid:
		b.solid = value
		b.savedSolid = value
		b.selected = model.BackgroundSolid
	case model.BackgroundCustom:
		b.Custom.Sync(value)
		b.savedCustom = value
		b.selected = model.BackgroundCustom
	}
}

// Revert puts both slots back on the values last passed to Sync and drops
// any draft. The radio stays where it is.
func (b *Background) Revert() {
	b.solid = b.savedSolid
	b.Custom = NewField(b.savedCustom)
}
