package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"design-studio/backend/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) (*CloudinaryProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewCloudinaryProvider("demo", "key", "secret", server.URL, 2*time.Second)
	require.NoError(t, err)
	return p, server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func decodeSearch(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestCloudinaryProvider_FolderHasAssets(t *testing.T) {
	var expression any
	var maxResults any
	total := "3"
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/resources/search"), r.URL.Path)
		body := decodeSearch(t, r)
		expression, maxResults = body["expression"], body["max_results"]
		writeJSON(w, http.StatusOK, `{"total_count":`+total+`,"resources":[]}`)
	})

	ok, err := p.FolderHasAssets(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "folder:acme/*", expression)
	assert.EqualValues(t, 1, maxResults)

	total = "0"
	ok, err = p.FolderHasAssets(context.Background(), "empty")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCloudinaryProvider_Folders(t *testing.T) {
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch {
		case strings.HasSuffix(r.URL.Path, "/demo/folders"):
			writeJSON(w, http.StatusOK, `{"folders":[{"name":"acme","path":"acme"},{"name":"","path":"beta"}],"total_count":2}`)
		case strings.HasSuffix(r.URL.Path, "/demo/folders/acme"):
			writeJSON(w, http.StatusOK, `{"folders":[{"name":"editor","path":"acme/editor"}],"total_count":1}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	roots, err := p.RootFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "beta"}, roots)

	subs, err := p.SubFolders(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, subs)
}

func TestCloudinaryProvider_CreateFolder(t *testing.T) {
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/upload"), r.URL.Path)
		assert.Equal(t, "acme/editor", r.FormValue("folder"))
		assert.Equal(t, FolderMarkerID, r.FormValue("public_id"))
		assert.True(t, strings.HasPrefix(r.FormValue("file"), "data:image/png;base64,"))
		writeJSON(w, http.StatusOK, `{"public_id":"acme/editor/.folder_marker","secure_url":"https://res.example/m.png"}`)
	})

	id, err := p.CreateFolder(context.Background(), "acme/editor")
	require.NoError(t, err)
	assert.Equal(t, "acme/editor/.folder_marker", id)
}

func TestCloudinaryProvider_SearchImages(t *testing.T) {
	var body map[string]any
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		body = decodeSearch(t, r)
		writeJSON(w, http.StatusOK, `{
			"total_count": 2,
			"resources": [
				{"public_id":"acme/editor/.folder_marker","format":"png","width":1,"height":1,"secure_url":"https://res.example/m.png","created_at":"2024-05-01T09:00:00Z"},
				{"public_id":"acme/editor/cat_x1","format":"png","width":640,"height":480,"secure_url":"https://res.example/cat.png","created_at":"2024-05-01T10:00:00Z"}
			]
		}`)
	})

	assets, err := p.SearchImages(context.Background(), "acme/editor", 500)
	require.NoError(t, err)

	assert.Equal(t, "folder:acme/editor/* AND resource_type:image", body["expression"])
	assert.EqualValues(t, 500, body["max_results"])

	require.Len(t, assets, 1)
	assert.Equal(t, "acme/editor/cat_x1", assets[0].PublicID)
	assert.Equal(t, "cat_x1", assets[0].Name())
	assert.Equal(t, "https://res.example/cat.png", assets[0].SecureURL)
	assert.Equal(t, 640, assets[0].Width)
	assert.Equal(t, 480, assets[0].Height)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), assets[0].CreatedAt.UTC())
}

func TestCloudinaryProvider_UploadImageAndScene(t *testing.T) {
	scene := `{"elements":[{"type":"rectangle"}]}`
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/raw/upload"):
			assert.Equal(t, SceneID("acme/editor/cat_x1"), r.FormValue("public_id"))
			assert.Equal(t, "data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte(scene)), r.FormValue("file"))
			writeJSON(w, http.StatusOK, `{"public_id":"acme/editor/cat_x1_scene","secure_url":"https://res.example/raw/cat_x1_scene"}`)
		case strings.HasSuffix(r.URL.Path, "/upload"):
			assert.Equal(t, "acme/editor", r.FormValue("folder"))
			assert.Equal(t, "https://img.example/cat.png", r.FormValue("file"))
			writeJSON(w, http.StatusOK, `{"public_id":"acme/editor/cat_x1","secure_url":"https://res.example/cat.png","format":"png","width":640,"height":480}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	asset, err := p.UploadImage(ctx, "acme/editor", "https://img.example/cat.png")
	require.NoError(t, err)
	assert.Equal(t, "acme/editor/cat_x1", asset.PublicID)
	assert.Equal(t, "png", asset.Format)
	assert.Equal(t, 640, asset.Width)

	sceneURL, err := p.UploadSceneData(ctx, asset.PublicID, scene)
	require.NoError(t, err)
	assert.Equal(t, "https://res.example/raw/cat_x1_scene", sceneURL)
}

func TestCloudinaryProvider_FetchSceneData(t *testing.T) {
	var serverURL string
	p, server := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/resources/raw/upload/acme/editor/cat_x1_scene"):
			writeJSON(w, http.StatusOK, `{"public_id":"acme/editor/cat_x1_scene","secure_url":"`+serverURL+`/files/cat_x1_scene"}`)
		case strings.HasSuffix(r.URL.Path, "/resources/raw/upload/acme/editor/dog_scene"):
			writeJSON(w, http.StatusNotFound, `{"error":{"message":"Resource not found - acme/editor/dog_scene"}}`)
		case r.URL.Path == "/files/cat_x1_scene":
			w.Write([]byte(`{"elements":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	serverURL = server.URL

	scene, err := p.FetchSceneData(context.Background(), "acme/editor/cat_x1")
	require.NoError(t, err)
	assert.Equal(t, `{"elements":[]}`, scene)

	_, err = p.FetchSceneData(context.Background(), "acme/editor/dog")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, constants.ErrCodeResourceNotFound, provErr.Code)
	assert.Contains(t, provErr.Details, "dog_scene")
}

func TestCloudinaryProvider_GetImage(t *testing.T) {
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/resources/image/upload/acme/editor/cat_x1"), r.URL.Path)
		writeJSON(w, http.StatusOK, `{"public_id":"acme/editor/cat_x1","secure_url":"https://res.example/cat.png","format":"png","width":64,"height":32}`)
	})

	asset, err := p.GetImage(context.Background(), "acme/editor/cat_x1")
	require.NoError(t, err)
	assert.Equal(t, MediaAsset{
		PublicID:  "acme/editor/cat_x1",
		SecureURL: "https://res.example/cat.png",
		Format:    "png",
		Width:     64,
		Height:    32,
	}, MediaAsset{
		PublicID:  asset.PublicID,
		SecureURL: asset.SecureURL,
		Format:    asset.Format,
		Width:     asset.Width,
		Height:    asset.Height,
	})
}

func TestCloudinaryProvider_Delete(t *testing.T) {
	var destroyed []string
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/raw/destroy"):
			destroyed = append(destroyed, "raw:"+r.FormValue("public_id"))
			writeJSON(w, http.StatusOK, `{"result":"not found"}`)
		case strings.HasSuffix(r.URL.Path, "/image/destroy"):
			destroyed = append(destroyed, "image:"+r.FormValue("public_id"))
			writeJSON(w, http.StatusOK, `{"result":"ok"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	result, err := p.DeleteImage(ctx, "acme/editor/cat_x1")
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	result, err = p.DeleteSceneData(ctx, "acme/editor/cat_x1")
	require.NoError(t, err)
	assert.Equal(t, "not found", result)

	assert.Equal(t, []string{"image:acme/editor/cat_x1", "raw:acme/editor/cat_x1_scene"}, destroyed)
}

func TestCloudinaryProvider_APIError(t *testing.T) {
	p, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"message":"Invalid image file"}}`)
	})

	_, err := p.UploadImage(context.Background(), "acme", "https://img.example/broken.png")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, constants.ErrCodeMediaAPIError, provErr.Code)
	assert.Equal(t, "Invalid image file", provErr.Details)
}

func TestCloudinaryProvider_NetworkError(t *testing.T) {
	p, server := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := p.RootFolders(context.Background())
	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, constants.ErrCodeNetworkError, provErr.Code)
	assert.NotNil(t, provErr.Unwrap())
}

func TestCloudinaryProvider_ThumbnailURL(t *testing.T) {
	p, err := NewCloudinaryProvider("demo", "key", "secret", "", 0)
	require.NoError(t, err)

	url, err := p.ThumbnailURL("acme/editor/cat_x1")
	require.NoError(t, err)
	assert.Contains(t, url, "/demo/image/upload/")
	assert.Contains(t, url, "c_fill,h_200,q_auto,w_200")
	assert.Contains(t, url, "acme/editor/cat_x1")
	assert.Equal(t, "cloudinary_media_library", p.GetProviderType())
}

func TestSceneID(t *testing.T) {
	assert.Equal(t, "acme/mindmapping/map_scene", SceneID("acme/mindmapping/map"))
}
