package comments

import (
	"fmt"

	"github.com/samvad-hq/samvad-comments/pkg/jsonutil"
)

// Comment is an immutable comment record. The zero value is a comment with
// no id and empty name and text. Comments compare equal with ==.
type Comment struct {
	id    int64
	hasID bool
	name  string
	text  string
}

// New builds a comment that has not been persisted yet.
func New(name, text string) Comment {
	return Comment{name: name, text: text}
}

// NewWithID builds a comment carrying a server-assigned id.
func NewWithID(id int64, name, text string) Comment {
	return Comment{id: id, hasID: true, name: name, text: text}
}

// ID returns the identifier and whether one is set.
func (c Comment) ID() (int64, bool) { return c.id, c.hasID }
func (c Comment) HasID() bool      { return c.hasID }
func (c Comment) Name() string     { return c.name }
func (c Comment) Text() string     { return c.text }

func (c Comment) String() string {
	if !c.hasID {
		return fmt.Sprintf("Comment(name=%q, text=%q)", c.name, c.text)
	}
	return fmt.Sprintf("Comment(id=%d, name=%q, text=%q)", c.id, c.name, c.text)
}

type commentJSON struct {
	ID   *int64 `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

func (c Comment) view() commentJSON {
	out := commentJSON{Name: c.name, Text: c.text}
	if c.hasID {
		id := c.id
		out.ID = &id
	}
	return out
}

// MarshalJSON renders {"id":…,"name":…,"text":…}, omitting id when unset.
func (c Comment) MarshalJSON() ([]byte, error) {
	return jsonutil.Encode(c.view())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var v commentJSON
	if err := jsonutil.DecodeInto(data, &v); err != nil {
		return err
	}
	*c = Comment{name: v.Name, text: v.Text}
	if v.ID != nil {
		c.id, c.hasID = *v.ID, true
	}
	return nil
}

// MarshalYAML lets yaml.v3 render the same shape as MarshalJSON.
func (c Comment) MarshalYAML() (any, error) {
	return c.view(), nil
}
