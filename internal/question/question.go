package question

import "strconv"

// DefaultMaxTags is the tag-slot bound used when none is configured.
const DefaultMaxTags = 4

// OptionLabels lists the four answer slots in column order.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// Option is one answer slot. At least one of Text or ImageRef must be
// non-empty for the record to be valid; an option may be image-only.
type Option struct {
	Text     string `json:"text"`
	ImageRef string `json:"image_ref,omitempty"`
}

// Empty reports whether the option carries neither text nor an image.
func (o Option) Empty() bool {
	return o.Text == "" && o.ImageRef == ""
}

// Record is one multiple-choice question as persisted to both stores.
//
// Type and Year are batch-level classification metadata copied onto every
// record of a document. Tags is already truncated to the configured bound
// by the time a Record is constructed. Creation/update timestamps are
// owned by the relational store and deliberately absent here.
type Record struct {
	ID       string    `json:"id"` // derived, see GenerateID
	Text     string    `json:"text"`
	ImageRef string    `json:"image_ref,omitempty"`
	Options  [4]Option `json:"options"` // A-D in order
	Answer   string    `json:"answer"`
	Type     string    `json:"type"`
	Year     string    `json:"year,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// Columns returns the fixed header schema shared by both stores:
// identity, question text and image, the four option pairs, answer,
// classification metadata, then maxTags tag slots.
func Columns(maxTags int) []string {
	cols := []string{"ID", "Question", "Question_Image_URL"}
	for _, label := range OptionLabels {
		cols = append(cols, "Option_"+label, "Option_"+label+"_Image_URL")
	}
	cols = append(cols, "Answer", "Type", "Year")
	for i := 1; i <= maxTags; i++ {
		cols = append(cols, tagColumn(i))
	}
	return cols
}

// RowValues returns the record as one row in Columns order. Tag slots
// beyond the supplied tags are left empty so every row has the same width.
func (r Record) RowValues(maxTags int) []string {
	row := []string{r.ID, r.Text, r.ImageRef}
	for _, opt := range r.Options {
		row = append(row, opt.Text, opt.ImageRef)
	}
	row = append(row, r.Answer, r.Type, r.Year)
	for i := 0; i < maxTags; i++ {
		if i < len(r.Tags) {
			row = append(row, r.Tags[i])
		} else {
			row = append(row, "")
		}
	}
	return row
}

func tagColumn(n int) string {
	return "Tag_" + strconv.Itoa(n)
}
