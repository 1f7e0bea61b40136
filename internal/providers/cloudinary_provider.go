package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"design-studio/backend/internal/constants"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/imroc/req/v3"
)

const (
	DefaultCloudinaryTimeout = 30 * time.Second

	// FolderMarkerID is the public id of the placeholder image uploaded to
	// materialize an otherwise empty folder.
	FolderMarkerID = ".folder_marker"

	// SceneSuffix is appended to an image public id to name its scene sidecar
	SceneSuffix = "_scene"

	thumbnailTransformation = "c_fill,h_200,q_auto,w_200"

	// 1x1 transparent PNG
	folderMarkerImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

	resourceImage = "image"
	resourceRaw   = "raw"
)

// MediaAsset is the subset of a Cloudinary resource the studio uses
type MediaAsset struct {
	PublicID  string
	SecureURL string
	Format    string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Name is the last path segment of the public id
func (a MediaAsset) Name() string {
	return path.Base(a.PublicID)
}

// CloudinaryProvider manages organization folders, images and scene
// sidecar files in a Cloudinary media library.
type CloudinaryProvider struct {
	cld     *cloudinary.Cloudinary
	timeout time.Duration
	// Client downloads scene sidecars from their delivery URLs
	Client *req.Client
}

// NewCloudinaryProvider creates a provider for the given account. apiBaseURL
// replaces the default https://api.cloudinary.com host when set.
func NewCloudinaryProvider(cloudName, apiKey, apiSecret, apiBaseURL string, timeout time.Duration) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	if apiBaseURL != "" {
		cld.Config.API.UploadPrefix = apiBaseURL
		cld.Admin.Config.API.UploadPrefix = apiBaseURL
		cld.Upload.Config.API.UploadPrefix = apiBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultCloudinaryTimeout
	}

	return &CloudinaryProvider{
		cld:     cld,
		timeout: timeout,
		Client:  req.C().SetTimeout(timeout).SetCommonRetryCount(0),
	}, nil
}

// GetProviderType returns the provider type identifier
func (p *CloudinaryProvider) GetProviderType() string {
	return "cloudinary_media_library"
}

// FolderHasAssets reports whether at least one asset lives under folder
func (p *CloudinaryProvider) FolderHasAssets(ctx context.Context, folder string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.Search(ctx, search.Query{
		Expression: folderExpression(folder),
		MaxResults: 1,
	})
	if err := checkResult("search", err, res); err != nil {
		return false, err
	}
	return res.TotalCount > 0, nil
}

// SubFolders lists the names of folders directly below folder
func (p *CloudinaryProvider) SubFolders(ctx context.Context, folder string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.SubFolders(ctx, admin.SubFoldersParams{Folder: folder})
	if err := checkResult("sub_folders", err, res); err != nil {
		return nil, err
	}
	return folderNames(res.Folders), nil
}

// RootFolders lists the names of top level folders
func (p *CloudinaryProvider) RootFolders(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.RootFolders(ctx, admin.RootFoldersParams{})
	if err := checkResult("root_folders", err, res); err != nil {
		return nil, err
	}
	return folderNames(res.Folders), nil
}

// CreateFolder materializes folder by uploading a placeholder image into it
// and returns the placeholder's public id.
func (p *CloudinaryProvider) CreateFolder(ctx context.Context, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Upload.Upload(ctx, folderMarkerImage, uploader.UploadParams{
		Folder:       folder,
		PublicID:     FolderMarkerID,
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
		ResourceType: resourceImage,
	})
	if err := checkResult("create_folder", err, res); err != nil {
		return "", err
	}
	return res.PublicID, nil
}

// SearchImages returns up to max images stored under folder, folder
// placeholders excluded.
func (p *CloudinaryProvider) SearchImages(ctx context.Context, folder string, max int) ([]MediaAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.Search(ctx, search.Query{
		Expression: folderExpression(folder) + " AND resource_type:" + resourceImage,
		WithField:  []string{"tags"},
		MaxResults: max,
	})
	if err := checkResult("search", err, res); err != nil {
		return nil, err
	}

	assets := make([]MediaAsset, 0, len(res.Assets))
	for _, a := range res.Assets {
		if path.Base(a.PublicID) == FolderMarkerID {
			continue
		}
		assets = append(assets, MediaAsset{
			PublicID:  a.PublicID,
			SecureURL: a.SecureURL,
			Format:    a.Format,
			Width:     a.Width,
			Height:    a.Height,
			CreatedAt: a.CreatedAt,
		})
	}
	return assets, nil
}

// UploadImage imports source (a remote URL or data URI) into folder
func (p *CloudinaryProvider) UploadImage(ctx context.Context, folder, source string) (*MediaAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder:         folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err := checkResult("upload", err, res); err != nil {
		return nil, err
	}

	return &MediaAsset{
		PublicID:  res.PublicID,
		SecureURL: res.SecureURL,
		Format:    res.Format,
		Width:     res.Width,
		Height:    res.Height,
		CreatedAt: res.CreatedAt,
	}, nil
}

// UploadSceneData stores scene as a raw text sidecar next to the image and
// returns the sidecar's delivery URL.
func (p *CloudinaryProvider) UploadSceneData(ctx context.Context, imagePublicID, scene string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	dataURI := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(scene))
	res, err := p.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		PublicID:     SceneID(imagePublicID),
		ResourceType: resourceRaw,
		Overwrite:    api.Bool(true),
	})
	if err := checkResult("upload_scene", err, res); err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// FetchSceneData downloads the scene sidecar of an image. A missing sidecar
// is reported as RESOURCE_NOT_FOUND.
func (p *CloudinaryProvider) FetchSceneData(ctx context.Context, imagePublicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.Asset(ctx, admin.AssetParams{
		PublicID:     SceneID(imagePublicID),
		AssetType:    resourceRaw,
		DeliveryType: "upload",
	})
	if err := checkResult("scene_resource", err, res); err != nil {
		return "", err
	}
	if res.SecureURL == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: "scene sidecar has no delivery URL",
		}
	}

	resp, err := p.Client.R().SetContext(ctx).Get(res.SecureURL)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	body := resp.String()
	if resp.StatusCode != http.StatusOK {
		return "", buildHTTPError(resp.StatusCode, res.SecureURL, body)
	}
	return body, nil
}

// GetImage looks up a single image by public id
func (p *CloudinaryProvider) GetImage(ctx context.Context, publicID string) (*MediaAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Admin.Asset(ctx, admin.AssetParams{
		PublicID:     publicID,
		AssetType:    resourceImage,
		DeliveryType: "upload",
	})
	if err := checkResult("resource", err, res); err != nil {
		return nil, err
	}

	return &MediaAsset{
		PublicID:  res.PublicID,
		SecureURL: res.SecureURL,
		Format:    res.Format,
		Width:     res.Width,
		Height:    res.Height,
		CreatedAt: res.CreatedAt,
	}, nil
}

// DeleteImage destroys an image and returns Cloudinary's result string
// ("ok" or "not found" on success).
func (p *CloudinaryProvider) DeleteImage(ctx context.Context, publicID string) (string, error) {
	return p.destroy(ctx, publicID, resourceImage)
}

// DeleteSceneData destroys the scene sidecar of an image
func (p *CloudinaryProvider) DeleteSceneData(ctx context.Context, imagePublicID string) (string, error) {
	return p.destroy(ctx, SceneID(imagePublicID), resourceRaw)
}

func (p *CloudinaryProvider) destroy(ctx context.Context, publicID, resourceType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err := checkResult("destroy", err, res); err != nil {
		return "", err
	}
	return res.Result, nil
}

// ThumbnailURL builds the 200x200 fill thumbnail delivery URL of an image
func (p *CloudinaryProvider) ThumbnailURL(publicID string) (string, error) {
	img, err := p.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Transformation = thumbnailTransformation
	return img.String()
}

// SceneID is the public id of the scene sidecar belonging to an image
func SceneID(imagePublicID string) string {
	return imagePublicID + SceneSuffix
}

func folderExpression(folder string) string {
	return fmt.Sprintf("folder:%s/*", folder)
}

func folderNames(folders []admin.FolderResult) []string {
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		name := f.Name
		if name == "" {
			name = f.Path
		}
		names = append(names, name)
	}
	return names
}

// checkResult folds the SDK's transport error and the error embedded in the
// response body into a ProviderError.
func checkResult(op string, err error, res any) error {
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("cloudinary %s failed", op),
			Err:     err,
		}
	}

	msg, ok := apiErrorMessage(res)
	if !ok {
		return &ProviderError{
			Code:    constants.ErrCodeMalformedResponse,
			Message: fmt.Sprintf("cloudinary %s returned no result", op),
		}
	}
	if msg == "" {
		return nil
	}

	code := constants.ErrCodeMediaAPIError
	if strings.Contains(strings.ToLower(msg), "not found") {
		code = constants.ErrCodeResourceNotFound
	}
	return &ProviderError{
		Code:    code,
		Message: constants.GetErrorMessage(constants.ErrCodeMediaAPIError),
		Details: msg,
	}
}

// apiErrorMessage returns the error message carried in a result body; ok is
// false for a nil or unknown result.
func apiErrorMessage(res any) (msg string, ok bool) {
	switch r := res.(type) {
	case *admin.SearchResult:
		if r != nil {
			return r.Error.Message, true
		}
	case *admin.FoldersResult:
		if r != nil {
			return r.Error.Message, true
		}
	case *admin.AssetResult:
		if r != nil {
			return r.Error.Message, true
		}
	case *uploader.UploadResult:
		if r != nil {
			return r.Error.Message, true
		}
	case *uploader.DestroyResult:
		if r != nil {
			return r.Error.Message, true
		}
	}
	return "", false
}

var _ MediaProvider = (*CloudinaryProvider)(nil)
