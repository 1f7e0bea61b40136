package constants

const (
	MsgInvalidJSON        = "Request body is not valid JSON"
	MsgClientNameRequired = "client_name is required and must not be blank"
	MsgQueryRequired      = "q is required"
	MsgInvalidLimit       = "limit must be an integer"
	MsgStorageFailure     = "Internal Server Error"
	MsgBackendRunning     = "Backend server is running"
	MsgHelloWorld         = "Hello World"
)

// Media library messages
const (
	MsgMediaNotConfigured       = "Media library is not configured"
	MsgOrganizationNameRequired = "Organization name is required"
	MsgOrganizationNameInvalid  = "Organization name contains invalid characters. Use only letters, numbers, underscores, and hyphens."
	MsgOrganizationExists       = "Organization already exists"
	MsgOrganizationCreated      = "Organization folder structure created successfully in Cloudinary"
	MsgOrganizationCreateFailed = "Failed to create some folders"
	MsgFolderPathRequired       = "Folder path is required"
	MsgInvalidFolderPath        = "Invalid folder path"
	MsgFolderExists             = "Folder already exists"
	MsgFolderCreated            = "Folder created successfully in Cloudinary"
	MsgFolderCreateFailed       = "Failed to create folder"
	MsgImageURLRequired         = "Image URL is required"
	MsgImageIDRequired          = "Image ID is required"
	MsgImagesFetchFailed        = "Failed to fetch images"
	MsgImageUploadFailed        = "Failed to upload image"
	MsgImageFetchFailed         = "Failed to fetch image"
	MsgImageDeleteFailed        = "Failed to delete image"
	MsgImageDeleted             = "Image deleted successfully"
)
