package request

// PhotoItem はジョブ作成時の写真指定です
type PhotoItem struct {
	FileName string `json:"fileName" validate:"required,filename"`
	MimeType string `json:"mimeType" validate:"required,imagemime"`
	Size     int64  `json:"size" validate:"required,gt=0"`
}

// CreateUploadJobRequest はアップロードジョブ作成リクエストです
type CreateUploadJobRequest struct {
	Photos []PhotoItem `json:"photos" validate:"required,min=1,max=100,dive"`
}

// ListUploadJobsRequest はジョブ一覧リクエストです（クエリパラメータ）
type ListUploadJobsRequest struct {
	Page    int `query:"page" validate:"gte=0"`
	PerPage int `query:"perPage" validate:"gte=0,lte=100"`
}
