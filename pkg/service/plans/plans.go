package plans

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
	"google.golang.org/api/iterator"
)

const signedURLTTL = 15 * time.Minute

// Service resolves named plan files stored in a Cloud Storage bucket to
// short-lived signed URLs.
type Service struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.PlanStore = &Service{}

type Option func(*Service)

// WithPrefix restricts the store to objects under the given key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = strings.TrimSuffix(prefix, "/") + "/"
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*Service, error) {
	if bucket == "" {
		return nil, goerr.New("plan bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	s := &Service{
		client: client,
		bucket: bucket,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}

// Resolve finds the object whose base name matches the plan name
// case-insensitively (with or without extension) and returns a signed URL.
func (s *Service) Resolve(ctx context.Context, name string) (string, error) {
	object, err := s.findObject(ctx, name)
	if err != nil {
		return "", err
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(signedURLTTL),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign plan URL", goerr.V("object", object))
	}

	return url, nil
}

// List returns the plan file names available, without the key prefix.
func (s *Service) List(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list plans", goerr.V("bucket", s.bucket))
		}
		names = append(names, strings.TrimPrefix(attrs.Name, s.prefix))
	}

	return names, nil
}

func (s *Service) findObject(ctx context.Context, name string) (string, error) {
	names, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, n := range names {
		base := strings.ToLower(n)
		noExt := base
		if idx := strings.LastIndex(base, "."); idx > 0 {
			noExt = base[:idx]
		}
		if base == want || noExt == want {
			return s.prefix + n, nil
		}
	}

	return "", goerr.New("plan not found", goerr.V("name", name))
}
