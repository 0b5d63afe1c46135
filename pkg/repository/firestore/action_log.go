package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type actionLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionLogRepository(client *firestore.Client) *actionLogRepository {
	return &actionLogRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *actionLogRepository) logCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_action_log"
	}
	return "action_log"
}

// actionLogDoc is the persisted shape of a log entry. The action batch and
// undo payloads hold tagged-union params, so they are stored as JSON blobs
// rather than native firestore maps.
type actionLogDoc struct {
	ID          string    `firestore:"id"`
	ProjectID   int64     `firestore:"project_id"`
	Source      string    `firestore:"source"`
	CommandText string    `firestore:"command_text"`
	Actions     string    `firestore:"actions"`
	Status      string    `firestore:"status"`
	UndoData    string    `firestore:"undo_data"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func encodeLogEntry(entry *model.ActionLogEntry) (*actionLogDoc, error) {
	actions, err := json.Marshal(entry.Actions)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode action batch", goerr.V("id", entry.ID))
	}

	undoData := ""
	if len(entry.UndoData) > 0 {
		raw, err := json.Marshal(entry.UndoData)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode undo data", goerr.V("id", entry.ID))
		}
		undoData = string(raw)
	}

	return &actionLogDoc{
		ID:          string(entry.ID),
		ProjectID:   entry.ProjectID,
		Source:      string(entry.Source),
		CommandText: entry.CommandText,
		Actions:     string(actions),
		Status:      string(entry.Status),
		UndoData:    undoData,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}, nil
}

func decodeLogEntry(doc *actionLogDoc) (*model.ActionLogEntry, error) {
	entry := &model.ActionLogEntry{
		ID:          types.LogID(doc.ID),
		ProjectID:   doc.ProjectID,
		Source:      types.CommandSource(doc.Source),
		CommandText: doc.CommandText,
		Status:      types.LogStatus(doc.Status),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}

	if err := json.Unmarshal([]byte(doc.Actions), &entry.Actions); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action batch", goerr.V("id", doc.ID))
	}
	if doc.UndoData != "" {
		if err := json.Unmarshal([]byte(doc.UndoData), &entry.UndoData); err != nil {
			return nil, goerr.Wrap(err, "failed to decode undo data", goerr.V("id", doc.ID))
		}
	}

	return entry, nil
}

func (r *actionLogRepository) Put(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	if entry.ID == "" {
		return nil, goerr.New("log entry ID must be set")
	}

	now := time.Now().UTC()
	stored := *entry
	stored.CreatedAt = now
	stored.UpdatedAt = now

	doc, err := encodeLogEntry(&stored)
	if err != nil {
		return nil, err
	}

	docRef := r.client.Collection(r.logCollection()).Doc(doc.ID)
	if _, err := docRef.Get(ctx); err == nil {
		return nil, goerr.New("log entry already exists", goerr.V("id", entry.ID))
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check log entry existence", goerr.V("id", entry.ID))
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put log entry", goerr.V("id", entry.ID))
	}

	return &stored, nil
}

func (r *actionLogRepository) Get(ctx context.Context, id types.LogID) (*model.ActionLogEntry, error) {
	docSnap, err := r.client.Collection(r.logCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get log entry", goerr.V("id", id))
	}

	var doc actionLogDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode log entry", goerr.V("id", id))
	}

	return decodeLogEntry(&doc)
}

func (r *actionLogRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ActionLogEntry, error) {
	iter := r.client.Collection(r.logCollection()).
		Where("project_id", "==", projectID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.ActionLogEntry, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate log entries", goerr.V("projectID", projectID))
		}

		var doc actionLogDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode log entry", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entry, err := decodeLogEntry(&doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *actionLogRepository) Update(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	docRef := r.client.Collection(r.logCollection()).Doc(string(entry.ID))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", entry.ID))
		}
		return nil, goerr.Wrap(err, "failed to check log entry existence", goerr.V("id", entry.ID))
	}

	updated := *entry
	updated.UpdatedAt = time.Now().UTC()

	doc, err := encodeLogEntry(&updated)
	if err != nil {
		return nil, err
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update log entry", goerr.V("id", entry.ID))
	}

	return &updated, nil
}
