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

type takeoffRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTakeoffRepository(client *firestore.Client) *takeoffRepository {
	return &takeoffRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *takeoffRepository) itemsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_takeoff_items"
	}
	return "takeoff_items"
}

func (r *takeoffRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *takeoffRepository) Create(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	nextID, err := nextCounterValue(ctx, r.client, r.counterCollection(), "takeoff_item_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next item ID")
	}

	now := time.Now().UTC()
	created := &model.TakeoffItem{
		ID:          nextID,
		ProjectID:   item.ProjectID,
		Category:    item.Category,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitCost:    item.UnitCost,
		Draft:       item.Draft,
		Note:        item.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.itemsCollection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create takeoff item", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *takeoffRepository) CreateWithID(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	if item.ID <= 0 {
		return nil, goerr.New("item ID must be set for re-insert", goerr.V("id", item.ID))
	}

	docID := fmt.Sprintf("%d", item.ID)
	docRef := r.client.Collection(r.itemsCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err == nil {
		return nil, goerr.New("item already exists", goerr.V("id", item.ID))
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check item existence", goerr.V("id", item.ID))
	}

	restored := &model.TakeoffItem{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		Category:    item.Category,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitCost:    item.UnitCost,
		Draft:       item.Draft,
		Note:        item.Note,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, restored); err != nil {
		return nil, goerr.Wrap(err, "failed to restore takeoff item", goerr.V("id", item.ID))
	}

	return restored, nil
}

func (r *takeoffRepository) Get(ctx context.Context, id int64) (*model.TakeoffItem, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.itemsCollection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get takeoff item", goerr.V("id", id))
	}

	var item model.TakeoffItem
	if err := docSnap.DataTo(&item); err != nil {
		return nil, goerr.Wrap(err, "failed to decode takeoff item", goerr.V("id", id))
	}

	return &item, nil
}

func (r *takeoffRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.TakeoffItem, error) {
	iter := r.client.Collection(r.itemsCollection()).
		Where("ProjectID", "==", projectID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	items := make([]*model.TakeoffItem, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate takeoff items", goerr.V("projectID", projectID))
		}

		var item model.TakeoffItem
		if err := docSnap.DataTo(&item); err != nil {
			return nil, goerr.Wrap(err, "failed to decode takeoff item", goerr.V("doc_id", docSnap.Ref.ID))
		}

		items = append(items, &item)
	}

	return items, nil
}

func (r *takeoffRepository) Update(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	docID := fmt.Sprintf("%d", item.ID)
	docRef := r.client.Collection(r.itemsCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", item.ID))
		}
		return nil, goerr.Wrap(err, "failed to check item existence", goerr.V("id", item.ID))
	}

	updated := &model.TakeoffItem{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		Category:    item.Category,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitCost:    item.UnitCost,
		Draft:       item.Draft,
		Note:        item.Note,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update takeoff item", goerr.V("id", item.ID))
	}

	return updated, nil
}

func (r *takeoffRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.itemsCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check item existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete takeoff item", goerr.V("id", id))
	}

	return nil
}
