package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/samvad-comments/internal/config"
	"github.com/samvad-hq/samvad-comments/internal/logger"
	"github.com/samvad-hq/samvad-comments/internal/storage"
	"github.com/samvad-hq/samvad-comments/pkg/comments"
	"github.com/samvad-hq/samvad-comments/pkg/httpclient"
	"github.com/samvad-hq/samvad-comments/pkg/publishers"
)

// CommentsAPI is the subset of comments.Client the service drives.
type CommentsAPI interface {
	List(ctx context.Context) ([]comments.Comment, error)
	Create(ctx context.Context, c comments.Comment) (comments.Comment, error)
	Update(ctx context.Context, c comments.Comment) (comments.Comment, error)
}

// EventPublisher publishes change events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Service runs comment operations and their side effects: archiving what the
// server returned and announcing changes.
type Service struct {
	api     CommentsAPI
	store   storage.Store
	events  EventPublisher
	baseURI string
	log     logger.Logger
	closers []func() error
}

// NewService wires a service from explicit collaborators. store and events may be nil.
func NewService(api CommentsAPI, store storage.Store, events EventPublisher, baseURI string, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if store == nil {
		store, _ = storage.NewStore("")
	}
	return &Service{
		api:     api,
		store:   store,
		events:  events,
		baseURI: baseURI,
		log:     log,
	}
}

// New builds the service from configuration: resty transport, snapshot store
// and the enabled publishers from publishers_file.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if err := cfg.RequireBaseURI(); err != nil {
		return nil, err
	}

	client := comments.NewClient(
		httpclient.NewRestyClient(cfg.HTTPTimeout),
		cfg.BaseURI,
		comments.WithLogger(log),
	)

	store, err := storage.NewStore(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	svc := NewService(client, store, fanout, client.BaseURI(), log)
	svc.closers = []func() error{fanout.Close, store.Close}
	return svc, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil, log), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	ids := make([]string, 0, len(enabled))
	for _, p := range enabled {
		ids = append(ids, p.ID)
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count": len(ids),
		"ids":   ids,
	})
	return publishers.NewFanout(pubs, log), nil
}

// Close releases the store and publisher clients opened by New.
func (s *Service) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// List fetches all comments and archives them.
func (s *Service) List(ctx context.Context) ([]comments.Comment, error) {
	out, err := s.api.List(ctx)
	if err != nil {
		return nil, err
	}
	s.archive(out...)
	s.log.InfoObj("comments listed", "comments_result", map[string]any{
		"count": len(out),
	})
	return out, nil
}

// Create creates a comment remotely, then archives and announces it.
func (s *Service) Create(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	created, err := s.api.Create(ctx, c)
	if err != nil {
		return comments.Comment{}, err
	}
	s.afterChange(ctx, publishers.EventCommentCreated, created)
	return created, nil
}

// Update updates a comment remotely, then archives and announces it.
func (s *Service) Update(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	updated, err := s.api.Update(ctx, c)
	if err != nil {
		return comments.Comment{}, err
	}
	s.afterChange(ctx, publishers.EventCommentUpdated, updated)
	return updated, nil
}

// Snapshot returns the archived comments.
func (s *Service) Snapshot() ([]comments.Comment, error) {
	return s.store.All()
}

// afterChange never fails the operation: the remote change already happened.
func (s *Service) afterChange(ctx context.Context, typ string, c comments.Comment) {
	s.archive(c)

	if s.events == nil {
		return
	}
	delivered, err := s.events.Publish(ctx, publishers.NewEvent(typ, c, s.baseURI))
	if err != nil {
		s.log.ErrorObj("comment event publish failed", "event_error", map[string]any{
			"event_type": typ,
			"delivered":  delivered,
			"error":      err.Error(),
		})
		return
	}
	s.log.InfoObj("comment event published", "event_result", map[string]any{
		"event_type": typ,
		"delivered":  delivered,
	})
}

func (s *Service) archive(records ...comments.Comment) {
	if err := s.store.Save(records...); err != nil {
		s.log.WarnObj("snapshot save failed", "snapshot_error", map[string]any{
			"count": len(records),
			"error": err.Error(),
		})
	}
}
