package providers

import (
	"context"
	"encoding/json"
)

// ElementProvider defines the interface for external element catalogs
type ElementProvider interface {
	// ListElements fetches a page of elements. On success the upstream body
	// is returned unmodified together with the upstream status code.
	ListElements(ctx context.Context, q ElementsQuery) (json.RawMessage, int, error)

	// SearchElements runs a free-text search against the catalog
	SearchElements(ctx context.Context, q SearchQuery) (json.RawMessage, int, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// MediaProvider defines the interface for the organization media library
type MediaProvider interface {
	FolderHasAssets(ctx context.Context, folder string) (bool, error)
	SubFolders(ctx context.Context, folder string) ([]string, error)
	RootFolders(ctx context.Context) ([]string, error)
	CreateFolder(ctx context.Context, folder string) (string, error)

	SearchImages(ctx context.Context, folder string, max int) ([]MediaAsset, error)
	UploadImage(ctx context.Context, folder, source string) (*MediaAsset, error)
	GetImage(ctx context.Context, publicID string) (*MediaAsset, error)
	DeleteImage(ctx context.Context, publicID string) (string, error)
	ThumbnailURL(publicID string) (string, error)

	// Scene sidecars hold the editor scene JSON saved alongside an image
	UploadSceneData(ctx context.Context, imagePublicID, scene string) (string, error)
	FetchSceneData(ctx context.Context, imagePublicID string) (string, error)
	DeleteSceneData(ctx context.Context, imagePublicID string) (string, error)

	GetProviderType() string
}

// ElementsQuery holds the parameters of a catalog listing
type ElementsQuery struct {
	Limit    int    // Page size forwarded as-is
	Category string // Empty or CategoryAll means no filter
	Sort     string // e.g. "popular"
}

// SearchQuery holds the parameters of a catalog search
type SearchQuery struct {
	Query    string
	Limit    int
	Category string
}

var _ ElementProvider = (*KlippyProvider)(nil)
