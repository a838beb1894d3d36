package ui

import "signer-core/internal/model"

// Glyph is an icon drawn next to a title or a button label.
type Glyph string

const (
	GlyphNone       Glyph = ""
	GlyphEye        Glyph = "(o)"
	GlyphValidate14 Glyph = "[v]"
	GlyphCrossmark  Glyph = "[x]"
)

// Review is a multi-field approval screen.
type Review struct {
	Title        [2]string
	Icon         Glyph
	Fields       []model.Field
	ApproveLabel string
	ApproveIcon  Glyph
	RejectLabel  string
	RejectIcon   Glyph
}

// Display is the holder facing side of the device: a screen plus the buttons
// that answer it. Every method blocks until the holder has acted.
type Display interface {
	// ShowReview returns true only on an explicit Approve.
	ShowReview(r Review) bool

	// Popup shows a short transient message.
	Popup(msg string)

	// ShowMenu returns the index of the selected item, or -1 when the input
	// is gone.
	ShowMenu(items []string) int

	// ScrollMessage shows a long message until the holder dismisses it.
	ScrollMessage(msg string)
}
