package api

import (
	"context"
	"encoding/json"
	"time"

	"design-studio/backend/internal/models/dtos"
	"design-studio/backend/internal/models/entities"
)

// StatusRecorder creates and lists status checks
type StatusRecorder interface {
	Create(ctx context.Context, clientName string) (*entities.StatusCheck, error)
	List(ctx context.Context) ([]entities.StatusCheck, error)
	Ping(ctx context.Context) error
	StoreDriver() string
}

// ElementCatalog proxies the element catalog. Both calls always yield a
// JSON document with an elements array.
type ElementCatalog interface {
	ListElements(ctx context.Context, limit int, category, sort string) json.RawMessage
	SearchElements(ctx context.Context, query string, limit int, category string) json.RawMessage
}

// MediaLibrary manages organization folders and images
type MediaLibrary interface {
	OrganizationExists(ctx context.Context, org string) bool
	CreateOrganization(ctx context.Context, name string) (*dtos.OrganizationCreateResponse, error)
	CreateFolder(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error)
	ListImages(ctx context.Context, org, typ string) (*dtos.MediaImagesResponse, error)
	UploadImage(ctx context.Context, org string, req dtos.ImageUploadReq) (*dtos.UploadedImage, error)
	GetImage(ctx context.Context, publicID string) (*dtos.ImageDetails, error)
	DeleteImage(ctx context.Context, publicID string) (*dtos.ImageDeleteResponse, error)
}

type Services struct {
	Status  StatusRecorder
	Catalog ElementCatalog
	// Media is nil when no media library is configured
	Media MediaLibrary
}

// Dependencies is everything the HTTP surface needs, built once at startup.
type Dependencies struct {
	Services *Services
	UpSince  time.Time
}

func NewDependencies(status StatusRecorder, catalog ElementCatalog) *Dependencies {
	return &Dependencies{
		Services: &Services{
			Status:  status,
			Catalog: catalog,
		},
		UpSince: time.Now(),
	}
}

// WithMedia enables the media library routes
func (d *Dependencies) WithMedia(media MediaLibrary) *Dependencies {
	d.Services.Media = media
	return d
}
