package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/models/dtos"
	"design-studio/backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock MediaLibrary
type mockMediaLibrary struct {
	existsFunc       func(ctx context.Context, org string) bool
	createOrgFunc    func(ctx context.Context, name string) (*dtos.OrganizationCreateResponse, error)
	createFolderFunc func(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error)
	listFunc         func(ctx context.Context, org, typ string) (*dtos.MediaImagesResponse, error)
	uploadFunc       func(ctx context.Context, org string, req dtos.ImageUploadReq) (*dtos.UploadedImage, error)
	getFunc          func(ctx context.Context, publicID string) (*dtos.ImageDetails, error)
	deleteFunc       func(ctx context.Context, publicID string) (*dtos.ImageDeleteResponse, error)
}

func (m *mockMediaLibrary) OrganizationExists(ctx context.Context, org string) bool {
	return m.existsFunc(ctx, org)
}

func (m *mockMediaLibrary) CreateOrganization(ctx context.Context, name string) (*dtos.OrganizationCreateResponse, error) {
	return m.createOrgFunc(ctx, name)
}

func (m *mockMediaLibrary) CreateFolder(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error) {
	return m.createFolderFunc(ctx, folderPath)
}

func (m *mockMediaLibrary) ListImages(ctx context.Context, org, typ string) (*dtos.MediaImagesResponse, error) {
	return m.listFunc(ctx, org, typ)
}

func (m *mockMediaLibrary) UploadImage(ctx context.Context, org string, req dtos.ImageUploadReq) (*dtos.UploadedImage, error) {
	return m.uploadFunc(ctx, org, req)
}

func (m *mockMediaLibrary) GetImage(ctx context.Context, publicID string) (*dtos.ImageDetails, error) {
	return m.getFunc(ctx, publicID)
}

func (m *mockMediaLibrary) DeleteImage(ctx context.Context, publicID string) (*dtos.ImageDeleteResponse, error) {
	return m.deleteFunc(ctx, publicID)
}

// mediaRouter mounts the media handlers the way the API router does
func mediaRouter(media MediaLibrary) http.Handler {
	deps := NewDependencies(nil, nil)
	if media != nil {
		deps.WithMedia(media)
	}
	h := NewHandlers(deps)

	r := chi.NewRouter()
	r.Post("/api/folder/create", h.CreateFolder())
	r.Route("/api/organization/{orgName}", func(r chi.Router) {
		r.Get("/check", h.CheckOrganization())
		r.Post("/create", h.CreateOrganization())
		r.Get("/images", h.ListOrganizationImages())
		r.Post("/upload", h.UploadOrganizationImage())
		r.Get("/image/*", h.GetImage())
		r.Delete("/image/*", h.DeleteImage())
	})
	return r
}

func doMedia(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(method, target, reader))
	return rr
}

func TestMediaRoutes_NotConfigured(t *testing.T) {
	router := mediaRouter(nil)

	for _, tc := range []struct{ method, target string }{
		{"GET", "/api/organization/acme/check"},
		{"POST", "/api/organization/acme/create"},
		{"POST", "/api/folder/create"},
		{"DELETE", "/api/organization/acme/image/acme/editor/cat"},
	} {
		rr := doMedia(t, router, tc.method, tc.target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, tc.target)
		assert.JSONEq(t, `{"error":"`+constants.MsgMediaNotConfigured+`"}`, rr.Body.String())
	}
}

func TestCheckOrganization(t *testing.T) {
	var got string
	router := mediaRouter(&mockMediaLibrary{
		existsFunc: func(ctx context.Context, org string) bool {
			got = org
			return true
		},
	})

	rr := doMedia(t, router, "GET", "/api/organization/acme%20co/check", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "acme co", got)
	assert.JSONEq(t, `{"exists":true,"organizationName":"acme co"}`, rr.Body.String())
}

func TestCreateOrganization_Responses(t *testing.T) {
	cases := map[string]struct {
		resp *dtos.OrganizationCreateResponse
		err  error
		code int
		body string
	}{
		"created": {
			resp: &dtos.OrganizationCreateResponse{
				Success:          true,
				Message:          constants.MsgOrganizationCreated,
				OrganizationName: "acme",
				FoldersCreated:   []string{"acme", "acme/editor", "acme/mindmapping"},
				Details:          []dtos.FolderCreation{{Folder: "acme", Success: true}},
			},
			code: http.StatusOK,
			body: `{"success":true,"message":"` + constants.MsgOrganizationCreated + `","organizationName":"acme",
				"foldersCreated":["acme","acme/editor","acme/mindmapping"],"details":[{"folder":"acme","success":true}]}`,
		},
		"invalid name": {
			err:  &services.MediaValidationError{Message: constants.MsgOrganizationNameInvalid, SuggestedName: "acme_co"},
			code: http.StatusBadRequest,
			body: `{"error":"` + constants.MsgOrganizationNameInvalid + `","suggestedName":"acme_co"}`,
		},
		"exists": {
			err:  services.ErrOrganizationExists,
			code: http.StatusBadRequest,
			body: `{"error":"` + constants.MsgOrganizationExists + `","exists":true,"organizationName":"acme"}`,
		},
		"partial failure": {
			resp: &dtos.OrganizationCreateResponse{
				OrganizationName: "acme",
				Details:          []dtos.FolderCreation{{Folder: "acme", Success: false, Error: "rejected"}},
			},
			err:  services.ErrFolderCreateFailed,
			code: http.StatusInternalServerError,
			body: `{"error":"` + constants.MsgOrganizationCreateFailed + `","organizationName":"acme",
				"details":[{"folder":"acme","success":false,"error":"rejected"}]}`,
		},
		"upstream error": {
			err:  errors.New("timeout"),
			code: http.StatusInternalServerError,
			body: `{"error":"Failed to create organization","message":"timeout"}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			router := mediaRouter(&mockMediaLibrary{
				createOrgFunc: func(ctx context.Context, org string) (*dtos.OrganizationCreateResponse, error) {
					assert.Equal(t, "acme", org)
					return tc.resp, tc.err
				},
			})

			rr := doMedia(t, router, "POST", "/api/organization/acme/create", "")
			assert.Equal(t, tc.code, rr.Code)
			assert.JSONEq(t, tc.body, rr.Body.String())
		})
	}
}

func TestCreateFolder_Handler(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		rr := doMedia(t, mediaRouter(&mockMediaLibrary{}), "POST", "/api/folder/create", "{")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("created", func(t *testing.T) {
		var got string
		router := mediaRouter(&mockMediaLibrary{
			createFolderFunc: func(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error) {
				got = folderPath
				return &dtos.FolderCreateResponse{Success: true, Message: constants.MsgFolderCreated, FolderPath: "acme/boards", PublicID: "acme/boards/.folder_marker"}, nil
			},
		})

		rr := doMedia(t, router, "POST", "/api/folder/create", `{"folderPath":"/acme/boards/"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "/acme/boards/", got)
		assert.JSONEq(t, `{"success":true,"message":"`+constants.MsgFolderCreated+`","folderPath":"acme/boards","public_id":"acme/boards/.folder_marker"}`, rr.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		router := mediaRouter(&mockMediaLibrary{
			createFolderFunc: func(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error) {
				return nil, &services.MediaValidationError{Message: constants.MsgFolderPathRequired}
			},
		})

		rr := doMedia(t, router, "POST", "/api/folder/create", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"`+constants.MsgFolderPathRequired+`"}`, rr.Body.String())
	})

	t.Run("upload failure", func(t *testing.T) {
		router := mediaRouter(&mockMediaLibrary{
			createFolderFunc: func(ctx context.Context, folderPath string) (*dtos.FolderCreateResponse, error) {
				return nil, &services.FolderCreateError{FolderPath: "acme/boards", Err: errors.New("rejected")}
			},
		})

		rr := doMedia(t, router, "POST", "/api/folder/create", `{"folderPath":"acme/boards"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"`+constants.MsgFolderCreateFailed+`","folderPath":"acme/boards","message":"rejected"}`, rr.Body.String())
	})
}

func TestListOrganizationImages_Handler(t *testing.T) {
	var gotOrg, gotType string
	scene := `{"elements":[]}`
	router := mediaRouter(&mockMediaLibrary{
		listFunc: func(ctx context.Context, org, typ string) (*dtos.MediaImagesResponse, error) {
			gotOrg, gotType = org, typ
			if typ == "broken" {
				return nil, errors.New("search failed")
			}
			return &dtos.MediaImagesResponse{
				Images: []dtos.MediaImage{{ID: "acme/editor/cat", Name: "cat", SceneData: &scene}},
				Count:  1,
			}, nil
		},
	})

	rr := doMedia(t, router, "GET", "/api/organization/acme/images?type=editor", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "acme", gotOrg)
	assert.Equal(t, "editor", gotType)
	assert.Contains(t, rr.Body.String(), `"count":1`)
	assert.Contains(t, rr.Body.String(), `"sceneData":"{\"elements\":[]}"`)

	rr = doMedia(t, router, "GET", "/api/organization/acme/images?type=broken", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgImagesFetchFailed+`","message":"search failed"}`, rr.Body.String())
}

func TestUploadOrganizationImage_Handler(t *testing.T) {
	var got dtos.ImageUploadReq
	router := mediaRouter(&mockMediaLibrary{
		uploadFunc: func(ctx context.Context, org string, req dtos.ImageUploadReq) (*dtos.UploadedImage, error) {
			got = req
			if req.ImageURL == "" {
				return nil, &services.MediaValidationError{Message: constants.MsgImageURLRequired}
			}
			return &dtos.UploadedImage{ID: "acme/mindmapping/map", URL: "https://res.example/map.png"}, nil
		},
	})

	rr := doMedia(t, router, "POST", "/api/organization/acme/upload", `{"imageUrl":"https://img.example/a.png","type":"mindmapping","sceneData":"{}"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dtos.ImageUploadReq{ImageURL: "https://img.example/a.png", Type: "mindmapping", SceneData: "{}"}, got)
	assert.Contains(t, rr.Body.String(), `"sceneData":null`)

	rr = doMedia(t, router, "POST", "/api/organization/acme/upload", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgImageURLRequired+`"}`, rr.Body.String())
}

func TestGetImage_Handler(t *testing.T) {
	var got []string
	router := mediaRouter(&mockMediaLibrary{
		getFunc: func(ctx context.Context, publicID string) (*dtos.ImageDetails, error) {
			got = append(got, publicID)
			return &dtos.ImageDetails{ID: publicID, URL: "https://res.example/cat.png", Format: "png", Width: 1, Height: 2}, nil
		},
	})

	rr := doMedia(t, router, "GET", "/api/organization/acme/image/acme/editor/cat", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"acme/editor/cat","url":"https://res.example/cat.png","format":"png","width":1,"height":2}`, rr.Body.String())

	rr = doMedia(t, router, "GET", "/api/organization/acme/image/acme%2Feditor%2Fdog", "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, []string{"acme/editor/cat", "acme/editor/dog"}, got)
}

func TestDeleteImage_Handler(t *testing.T) {
	router := mediaRouter(&mockMediaLibrary{
		deleteFunc: func(ctx context.Context, publicID string) (*dtos.ImageDeleteResponse, error) {
			switch publicID {
			case "acme/editor/cat":
				return &dtos.ImageDeleteResponse{Success: true, Message: constants.MsgImageDeleted, ID: publicID}, nil
			case "acme/editor/odd":
				return nil, &services.ImageDeleteError{Result: "error"}
			default:
				return nil, errors.New("network down")
			}
		},
	})

	rr := doMedia(t, router, "DELETE", "/api/organization/acme/image/acme%2Feditor%2Fcat", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"`+constants.MsgImageDeleted+`","id":"acme/editor/cat"}`, rr.Body.String())

	rr = doMedia(t, router, "DELETE", "/api/organization/acme/image/acme/editor/odd", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgImageDeleteFailed+`","result":"error"}`, rr.Body.String())

	rr = doMedia(t, router, "DELETE", "/api/organization/acme/image/acme/editor/gone", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgImageDeleteFailed+`","message":"network down"}`, rr.Body.String())
}
