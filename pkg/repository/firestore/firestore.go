package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
)

type Firestore struct {
	client    *firestore.Client
	project   *projectRepository
	takeoff   *takeoffRepository
	rfi       *rfiRepository
	actionLog *actionLogRepository
}

var _ interfaces.Repository = &Firestore{}

type options struct {
	databaseID       string
	collectionPrefix string
}

type Option func(*options)

// WithDatabaseID selects a named Firestore database instead of "(default)".
func WithDatabaseID(databaseID string) Option {
	return func(o *options) {
		o.databaseID = databaseID
	}
}

// WithCollectionPrefix prepends a prefix to every collection name. Used by
// tests to isolate data from production collections.
func WithCollectionPrefix(prefix string) Option {
	return func(o *options) {
		o.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	var client *firestore.Client
	var err error
	if cfg.databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, cfg.databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", cfg.databaseID))
	}

	f := &Firestore{
		client:    client,
		project:   newProjectRepository(client),
		takeoff:   newTakeoffRepository(client),
		rfi:       newRFIRepository(client),
		actionLog: newActionLogRepository(client),
	}
	f.project.collectionPrefix = cfg.collectionPrefix
	f.takeoff.collectionPrefix = cfg.collectionPrefix
	f.rfi.collectionPrefix = cfg.collectionPrefix
	f.actionLog.collectionPrefix = cfg.collectionPrefix

	return f, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Takeoff() interfaces.TakeoffRepository {
	return f.takeoff
}

func (f *Firestore) RFI() interfaces.RFIRepository {
	return f.rfi
}

func (f *Firestore) ActionLog() interfaces.ActionLogRepository {
	return f.actionLog
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
