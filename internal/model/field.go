package model

// Field is one named line of a review screen.
type Field struct {
	Name  string
	Value string
}

// Review field names, in display order.
const (
	FieldAmount      = "Amount"
	FieldDestination = "Destination"
	FieldMemo        = "Memo"
)

// MaxReviewFields bounds the fields of a single review screen.
const MaxReviewFields = 3
