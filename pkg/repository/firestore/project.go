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

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *projectRepository) projectsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_projects"
	}
	return "projects"
}

func (r *projectRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	nextID, err := nextCounterValue(ctx, r.client, r.counterCollection(), "project_counter")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next project ID")
	}

	now := time.Now().UTC()
	created := &model.Project{
		ID:                 nextID,
		Name:               p.Name,
		Type:               p.Type,
		TaxPercent:         p.TaxPercent,
		MarkupPercent:      p.MarkupPercent,
		LaborBurdenPercent: p.LaborBurdenPercent,
		WastePercent:       p.WastePercent,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.projectsCollection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.projectsCollection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var p model.Project
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("id", id))
	}

	return &p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.client.Collection(r.projectsCollection()).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var p model.Project
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project", goerr.V("doc_id", docSnap.Ref.ID))
		}

		projects = append(projects, &p)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.projectsCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", p.ID))
		}
		return nil, goerr.Wrap(err, "failed to check project existence", goerr.V("id", p.ID))
	}

	updated := &model.Project{
		ID:                 p.ID,
		Name:               p.Name,
		Type:               p.Type,
		TaxPercent:         p.TaxPercent,
		MarkupPercent:      p.MarkupPercent,
		LaborBurdenPercent: p.LaborBurdenPercent,
		WastePercent:       p.WastePercent,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V("id", p.ID))
	}

	return updated, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.projectsCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check project existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete project", goerr.V("id", id))
	}

	return nil
}
