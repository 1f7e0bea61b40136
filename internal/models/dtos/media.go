package dtos

import "time"

type FolderCreateReq struct {
	FolderPath string `json:"folderPath"`
}

// ImageUploadReq imports an image into an organization folder. Type selects
// the editor or mindmapping subfolder; SceneData is the editor scene JSON.
type ImageUploadReq struct {
	ImageURL  string `json:"imageUrl"`
	Type      string `json:"type"`
	SceneData string `json:"sceneData"`
}

type OrganizationCheckResponse struct {
	Exists           bool   `json:"exists"`
	OrganizationName string `json:"organizationName"`
}

// FolderCreation is the outcome of creating one folder of an organization
type FolderCreation struct {
	Folder  string `json:"folder"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type OrganizationCreateResponse struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message"`
	OrganizationName string           `json:"organizationName"`
	FoldersCreated   []string         `json:"foldersCreated"`
	Details          []FolderCreation `json:"details"`
}

type FolderCreateResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FolderPath string `json:"folderPath"`
	PublicID   string `json:"public_id,omitempty"`
	Exists     bool   `json:"exists,omitempty"`
}

// MediaImage is an image in an organization listing
type MediaImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	SceneData *string   `json:"sceneData"`
}

type MediaImagesResponse struct {
	Images []MediaImage `json:"images"`
	Count  int          `json:"count"`
}

// UploadedImage answers an upload. SceneData is the sidecar URL, or null
// when no scene was sent or it could not be stored.
type UploadedImage struct {
	ID        string  `json:"id"`
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail"`
	Format    string  `json:"format"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	SceneData *string `json:"sceneData"`
}

type ImageDetails struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ImageDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MediaErrorResponse is the error body of the media routes
type MediaErrorResponse struct {
	Error            string           `json:"error"`
	Message          string           `json:"message,omitempty"`
	SuggestedName    string           `json:"suggestedName,omitempty"`
	Exists           bool             `json:"exists,omitempty"`
	OrganizationName string           `json:"organizationName,omitempty"`
	FolderPath       string           `json:"folderPath,omitempty"`
	Details          []FolderCreation `json:"details,omitempty"`
	Result           string           `json:"result,omitempty"`
}
