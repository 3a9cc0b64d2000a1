package cookies

import (
	"context"
	"net/http"
	"time"
)

// Cookie is a persisted name/value pair with its write attributes.
type Cookie struct {
	Name      string
	Value     string
	Secure    bool
	SameSite  http.SameSite
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns (nil, nil) when the cookie does not exist.
	Get(ctx context.Context, name string) (*Cookie, error)
	Set(ctx context.Context, c Cookie) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Cookie, error)
	Clear(ctx context.Context) error
}
