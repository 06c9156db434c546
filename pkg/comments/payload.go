package comments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// commentPayload is the wire shape of a comment returned by the server.
type commentPayload struct {
	ID   *wireID `json:"id"`
	Name *string `json:"name"`
	Text *string `json:"text"`
}

func (p commentPayload) toComment() (Comment, error) {
	switch {
	case p.ID == nil:
		return Comment{}, errors.New(`missing field "id"`)
	case p.Name == nil:
		return Comment{}, errors.New(`missing field "name"`)
	case p.Text == nil:
		return Comment{}, errors.New(`missing field "text"`)
	}
	return NewWithID(int64(*p.ID), *p.Name, *p.Text), nil
}

// wireID accepts an integer id sent either as a JSON number or as a numeric string.
type wireID int64

func (w *wireID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("field \"id\" is not an integer: %s", string(data))
	}
	*w = wireID(id)
	return nil
}
