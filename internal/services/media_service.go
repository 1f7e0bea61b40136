package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/metrics"
	"design-studio/backend/internal/models/dtos"
	"design-studio/backend/internal/providers"

	"golang.org/x/sync/errgroup"
)

const (
	SubfolderEditor      = "editor"
	SubfolderMindmapping = "mindmapping"

	// MaxOrganizationImages caps a single listing
	MaxOrganizationImages = 500

	sceneFetchConcurrency = 8
)

var (
	ErrOrganizationExists = errors.New("organization already exists")
	ErrFolderCreateFailed = errors.New("failed to create some folders")

	invalidOrgNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	repeatedSlashes     = regexp.MustCompile(`/+`)
)

// MediaValidationError rejects a request before any Cloudinary call
type MediaValidationError struct {
	Message       string
	SuggestedName string
}

func (e *MediaValidationError) Error() string {
	return e.Message
}

// FolderCreateError reports a folder that could not be materialized
type FolderCreateError struct {
	FolderPath string
	Err        error
}

func (e *FolderCreateError) Error() string {
	return fmt.Sprintf("create folder %s: %v", e.FolderPath, e.Err)
}

func (e *FolderCreateError) Unwrap() error {
	return e.Err
}

// ImageDeleteError carries an unexpected destroy result
type ImageDeleteError struct {
	Result string
}

func (e *ImageDeleteError) Error() string {
	return fmt.Sprintf("destroy returned %q", e.Result)
}

// MediaService manages organization folders and their images
type MediaService struct {
	provider providers.MediaProvider
	metrics  *metrics.MetricsRegistry
}

func NewMediaService(provider providers.MediaProvider, m *metrics.MetricsRegistry) *MediaService {
	return &MediaService{provider: provider, metrics: m}
}

// SanitizeOrganizationName replaces every character outside [a-zA-Z0-9_-]
// with an underscore.
func SanitizeOrganizationName(name string) string {
	return invalidOrgNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
}

// SanitizeFolderPath trims the path, collapses repeated slashes and strips
// one leading and one trailing slash.
func SanitizeFolderPath(raw string) string {
	p := repeatedSlashes.ReplaceAllString(strings.TrimSpace(raw), "/")
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}

// MediaFolder is the folder an organization keeps images of kind typ in.
// An empty typ means the organization root.
func MediaFolder(org, typ string) string {
	if typ = strings.TrimSpace(typ); typ == "" {
		return org
	}
	return org + "/" + typ
}

// OrganizationExists looks for assets in the organization folder, then for
// subfolders, then among the root folders. Lookup failures count as absent.
func (svc *MediaService) OrganizationExists(ctx context.Context, org string) bool {
	if ok, err := svc.provider.FolderHasAssets(ctx, org); err == nil && ok {
		return true
	} else if err != nil {
		logging.Debug("Organization asset lookup failed", "organization", org, "error", err.Error())
	}

	if subs, err := svc.provider.SubFolders(ctx, org); err == nil && len(subs) > 0 {
		return true
	}

	return svc.inRootFolders(ctx, org)
}

func (svc *MediaService) inRootFolders(ctx context.Context, org string) bool {
	roots, err := svc.provider.RootFolders(ctx)
	if err != nil {
		logging.Debug("Root folder listing failed", "error", err.Error())
		return false
	}
	return slices.Contains(roots, org)
}

// CreateOrganization creates the organization folder with its editor and
// mindmapping subfolders. The response is returned alongside
// ErrFolderCreateFailed so callers can report per-folder details.
func (svc *MediaService) CreateOrganization(ctx context.Context, rawName string) (*dtos.OrganizationCreateResponse, error) {
	org := strings.TrimSpace(rawName)
	if org == "" {
		return nil, &MediaValidationError{Message: constants.MsgOrganizationNameRequired}
	}
	if sanitized := SanitizeOrganizationName(org); sanitized != org {
		return nil, &MediaValidationError{
			Message:       constants.MsgOrganizationNameInvalid,
			SuggestedName: sanitized,
		}
	}

	exists, err := svc.provider.FolderHasAssets(ctx, org)
	if err != nil {
		logging.Debug("Organization asset lookup failed", "organization", org, "error", err.Error())
	}
	if exists || svc.inRootFolders(ctx, org) {
		return nil, ErrOrganizationExists
	}

	folders := []string{
		org,
		MediaFolder(org, SubfolderEditor),
		MediaFolder(org, SubfolderMindmapping),
	}

	allCreated := true
	details := make([]dtos.FolderCreation, 0, len(folders))
	for _, folder := range folders {
		start := time.Now()
		_, err := svc.provider.CreateFolder(ctx, folder)
		svc.observe("media_create_folder", start, err)

		d := dtos.FolderCreation{Folder: folder, Success: err == nil}
		if err != nil {
			allCreated = false
			d.Error = err.Error()
			logging.Error("Cloudinary folder creation failed", "folder", folder, "error", err.Error())
		}
		details = append(details, d)
	}

	resp := &dtos.OrganizationCreateResponse{
		OrganizationName: org,
		FoldersCreated:   folders,
		Details:          details,
	}

	if !allCreated {
		// a partial run still counts when the organization now has subfolders
		subs, err := svc.provider.SubFolders(ctx, org)
		if err != nil || len(subs) == 0 {
			resp.Message = constants.MsgOrganizationCreateFailed
			return resp, ErrFolderCreateFailed
		}
	}

	resp.Success = true
	resp.Message = constants.MsgOrganizationCreated
	logging.Info("Organization created", "organization", org)
	return resp, nil
}

// CreateFolder creates an arbitrary folder path. An existing, non-empty
// folder is reported as success with Exists set.
func (svc *MediaService) CreateFolder(ctx context.Context, rawPath string) (*dtos.FolderCreateResponse, error) {
	if strings.TrimSpace(rawPath) == "" {
		return nil, &MediaValidationError{Message: constants.MsgFolderPathRequired}
	}
	folder := SanitizeFolderPath(rawPath)
	if folder == "" {
		return nil, &MediaValidationError{Message: constants.MsgInvalidFolderPath}
	}

	if exists, err := svc.provider.FolderHasAssets(ctx, folder); err == nil && exists {
		return &dtos.FolderCreateResponse{
			Success:    true,
			Message:    constants.MsgFolderExists,
			FolderPath: folder,
			Exists:     true,
		}, nil
	}

	start := time.Now()
	publicID, err := svc.provider.CreateFolder(ctx, folder)
	svc.observe("media_create_folder", start, err)
	if err != nil {
		return nil, &FolderCreateError{FolderPath: folder, Err: err}
	}

	return &dtos.FolderCreateResponse{
		Success:    true,
		Message:    constants.MsgFolderCreated,
		FolderPath: folder,
		PublicID:   publicID,
	}, nil
}

// ListImages returns the images of an organization folder with thumbnails
// and, where a sidecar exists, their scene data.
func (svc *MediaService) ListImages(ctx context.Context, org, typ string) (*dtos.MediaImagesResponse, error) {
	if strings.TrimSpace(org) == "" {
		return nil, &MediaValidationError{Message: constants.MsgOrganizationNameRequired}
	}

	start := time.Now()
	assets, err := svc.provider.SearchImages(ctx, MediaFolder(org, typ), MaxOrganizationImages)
	svc.observe("media_search", start, err)
	if err != nil {
		return nil, fmt.Errorf("search images: %w", err)
	}

	images := make([]dtos.MediaImage, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sceneFetchConcurrency)

	for i, asset := range assets {
		images[i] = dtos.MediaImage{
			ID:        asset.PublicID,
			URL:       asset.SecureURL,
			Thumbnail: svc.thumbnail(asset.PublicID),
			Format:    asset.Format,
			Width:     asset.Width,
			Height:    asset.Height,
			CreatedAt: asset.CreatedAt,
			Name:      asset.Name(),
		}

		g.Go(func() error {
			scene, err := svc.provider.FetchSceneData(gctx, asset.PublicID)
			if err != nil {
				return nil
			}
			images[i].SceneData = &scene
			return nil
		})
	}
	_ = g.Wait()

	return &dtos.MediaImagesResponse{Images: images, Count: len(images)}, nil
}

// UploadImage imports an image into the organization folder and stores the
// scene data, when given, as a sidecar. A failed sidecar upload does not
// fail the request.
func (svc *MediaService) UploadImage(ctx context.Context, org string, req dtos.ImageUploadReq) (*dtos.UploadedImage, error) {
	if strings.TrimSpace(org) == "" {
		return nil, &MediaValidationError{Message: constants.MsgOrganizationNameRequired}
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, &MediaValidationError{Message: constants.MsgImageURLRequired}
	}

	start := time.Now()
	asset, err := svc.provider.UploadImage(ctx, MediaFolder(org, req.Type), req.ImageURL)
	svc.observe("media_upload", start, err)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	resp := &dtos.UploadedImage{
		ID:        asset.PublicID,
		URL:       asset.SecureURL,
		Thumbnail: svc.thumbnail(asset.PublicID),
		Format:    asset.Format,
		Width:     asset.Width,
		Height:    asset.Height,
	}

	if req.SceneData != "" {
		sceneURL, err := svc.provider.UploadSceneData(ctx, asset.PublicID, req.SceneData)
		if err != nil {
			logging.Warn("Failed to store scene data", "image_id", asset.PublicID, "error", err.Error())
		} else {
			resp.SceneData = &sceneURL
		}
	}
	return resp, nil
}

// GetImage returns an image's delivery details
func (svc *MediaService) GetImage(ctx context.Context, publicID string) (*dtos.ImageDetails, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, &MediaValidationError{Message: constants.MsgImageIDRequired}
	}

	start := time.Now()
	asset, err := svc.provider.GetImage(ctx, publicID)
	svc.observe("media_get", start, err)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &dtos.ImageDetails{
		ID:     asset.PublicID,
		URL:    asset.SecureURL,
		Format: asset.Format,
		Width:  asset.Width,
		Height: asset.Height,
	}, nil
}

// DeleteImage destroys an image and its scene sidecar. Deleting an image
// that does not exist succeeds.
func (svc *MediaService) DeleteImage(ctx context.Context, publicID string) (*dtos.ImageDeleteResponse, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, &MediaValidationError{Message: constants.MsgImageIDRequired}
	}

	start := time.Now()
	result, err := svc.provider.DeleteImage(ctx, publicID)
	svc.observe("media_delete", start, err)
	if err != nil {
		return nil, fmt.Errorf("delete image: %w", err)
	}

	if _, err := svc.provider.DeleteSceneData(ctx, publicID); err != nil {
		logging.Debug("Scene file not found or already deleted", "scene_id", providers.SceneID(publicID), "error", err.Error())
	}

	if result != "ok" && result != "not found" {
		return nil, &ImageDeleteError{Result: result}
	}

	return &dtos.ImageDeleteResponse{
		Success: true,
		Message: constants.MsgImageDeleted,
		ID:      publicID,
	}, nil
}

func (svc *MediaService) thumbnail(publicID string) string {
	url, err := svc.provider.ThumbnailURL(publicID)
	if err != nil {
		logging.Warn("Thumbnail URL build failed", "image_id", publicID, "error", err.Error())
		return ""
	}
	return url
}

func (svc *MediaService) observe(op string, start time.Time, err error) {
	if svc.metrics == nil {
		return
	}
	svc.metrics.UpstreamRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
	svc.metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
