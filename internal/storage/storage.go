package storage

import (
	"strings"

	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

// Package storage archives comments returned by the server in a local file.
// The archive is write-mostly: the client never reads from it.

// Store keeps the latest known version of each comment, keyed by id.
type Store interface {
	Close() error
	Save(records ...comments.Comment) error
	All() ([]comments.Comment, error)
}

// NewStore opens the bbolt archive at path, or a no-op store when path is empty.
func NewStore(path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return noopStore{}, nil
	}
	return openBolt(path)
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) Save(...comments.Comment) error   { return nil }
func (noopStore) All() ([]comments.Comment, error) { return nil, nil }
