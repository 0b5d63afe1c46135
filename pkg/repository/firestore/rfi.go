package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type rfiRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRFIRepository(client *firestore.Client) *rfiRepository {
	return &rfiRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *rfiRepository) rfisCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_rfis"
	}
	return "rfis"
}

func (r *rfiRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *rfiRepository) Create(ctx context.Context, rfi *model.RFI) (*model.RFI, error) {
	nextID, err := nextCounterValue(ctx, r.client, r.counterCollection(), "rfi_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next RFI ID")
	}

	created := &model.RFI{
		ID:        nextID,
		ProjectID: rfi.ProjectID,
		Trade:     rfi.Trade,
		Question:  rfi.Question,
		Status:    rfi.Status,
		CreatedAt: time.Now().UTC(),
	}

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.rfisCollection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create RFI", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *rfiRepository) Get(ctx context.Context, id int64) (*model.RFI, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.rfisCollection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get RFI", goerr.V("id", id))
	}

	var rfi model.RFI
	if err := docSnap.DataTo(&rfi); err != nil {
		return nil, goerr.Wrap(err, "failed to decode RFI", goerr.V("id", id))
	}

	return &rfi, nil
}

func (r *rfiRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.RFI, error) {
	iter := r.client.Collection(r.rfisCollection()).
		Where("ProjectID", "==", projectID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	rfis := make([]*model.RFI, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate RFIs", goerr.V("projectID", projectID))
		}

		var rfi model.RFI
		if err := docSnap.DataTo(&rfi); err != nil {
			return nil, goerr.Wrap(err, "failed to decode RFI", goerr.V("doc_id", docSnap.Ref.ID))
		}

		rfis = append(rfis, &rfi)
	}

	return rfis, nil
}

func (r *rfiRepository) Update(ctx context.Context, rfi *model.RFI) (*model.RFI, error) {
	docID := fmt.Sprintf("%d", rfi.ID)
	docRef := r.client.Collection(r.rfisCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", rfi.ID))
		}
		return nil, goerr.Wrap(err, "failed to check RFI existence", goerr.V("id", rfi.ID))
	}

	updated := &model.RFI{
		ID:        rfi.ID,
		ProjectID: rfi.ProjectID,
		Trade:     rfi.Trade,
		Question:  rfi.Question,
		Status:    rfi.Status,
		CreatedAt: rfi.CreatedAt,
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update RFI", goerr.V("id", rfi.ID))
	}

	return updated, nil
}

func (r *rfiRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.rfisCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check RFI existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete RFI", goerr.V("id", id))
	}

	return nil
}
