package response

import (
	"time"

	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/command"
	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
)

// PhotoUploadURLResponse は写真ごとのアップロードURL情報です
type PhotoUploadURLResponse struct {
	PhotoID   string    `json:"photoId"`
	FileName  string    `json:"fileName"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateUploadJobResponse はアップロードジョブ作成レスポンスです
type CreateUploadJobResponse struct {
	JobID      string                   `json:"jobId"`
	Total      int                      `json:"total"`
	UploadURLs []PhotoUploadURLResponse `json:"uploadUrls"`
}

// NewCreateUploadJobResponse はコマンド出力からレスポンスを構築します
func NewCreateUploadJobResponse(output *command.CreateUploadJobOutput) *CreateUploadJobResponse {
	urls := make([]PhotoUploadURLResponse, 0, len(output.UploadURLs))
	for _, u := range output.UploadURLs {
		urls = append(urls, PhotoUploadURLResponse{
			PhotoID:   u.PhotoID.String(),
			FileName:  u.FileName,
			URL:       u.URL,
			ExpiresAt: u.ExpiresAt,
		})
	}

	return &CreateUploadJobResponse{
		JobID:      output.JobID.String(),
		Total:      output.Total,
		UploadURLs: urls,
	}
}

// PhotoResponse はジョブ詳細の写真情報です
type PhotoResponse struct {
	PhotoID         string    `json:"photoId"`
	FileName        string    `json:"fileName"`
	MimeType        string    `json:"mimeType"`
	Size            int64     `json:"size"`
	Status          string    `json:"status"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
}

// UploadJobResponse はアップロードジョブ詳細レスポンスです
type UploadJobResponse struct {
	JobID       string          `json:"jobId"`
	Status      string          `json:"status"`
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	Failed      int             `json:"failed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Photos      []PhotoResponse `json:"photos"`
}

// NewUploadJobResponse はスナップショットからレスポンスを構築します
func NewUploadJobResponse(snapshot *query.UploadJobSnapshot) *UploadJobResponse {
	photos := make([]PhotoResponse, 0, len(snapshot.Photos))
	for _, p := range snapshot.Photos {
		photos = append(photos, PhotoResponse{
			PhotoID:         p.PhotoID.String(),
			FileName:        p.FileName,
			MimeType:        p.MimeType,
			Size:            p.Size,
			Status:          string(p.Status),
			StatusChangedAt: p.StatusChangedAt,
		})
	}

	return &UploadJobResponse{
		JobID:       snapshot.JobID.String(),
		Status:      string(snapshot.Status),
		Total:       snapshot.Total,
		Completed:   snapshot.Completed,
		Failed:      snapshot.Failed,
		CreatedAt:   snapshot.CreatedAt,
		UpdatedAt:   snapshot.UpdatedAt,
		CompletedAt: snapshot.CompletedAt,
		Photos:      photos,
	}
}

// UploadJobSummaryResponse はジョブ一覧の1件分です
type UploadJobSummaryResponse struct {
	JobID       string     `json:"jobId"`
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Completed   int        `json:"completed"`
	Failed      int        `json:"failed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewUploadJobSummaryResponses はクエリ出力からレスポンスを構築します
func NewUploadJobSummaryResponses(summaries []query.UploadJobSummary) []UploadJobSummaryResponse {
	responses := make([]UploadJobSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, UploadJobSummaryResponse{
			JobID:       s.JobID.String(),
			Status:      string(s.Status),
			Total:       s.Total,
			Completed:   s.Completed,
			Failed:      s.Failed,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
			CompletedAt: s.CompletedAt,
		})
	}
	return responses
}

// PhotoDownloadURLResponse は写真ダウンロードURLレスポンスです
type PhotoDownloadURLResponse struct {
	PhotoID     string    `json:"photoId"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewPhotoDownloadURLResponse はクエリ出力からレスポンスを構築します
func NewPhotoDownloadURLResponse(output *query.GetPhotoDownloadURLOutput) *PhotoDownloadURLResponse {
	return &PhotoDownloadURLResponse{
		PhotoID:     output.PhotoID.String(),
		FileName:    output.FileName,
		MimeType:    output.MimeType,
		Size:        output.Size,
		DownloadURL: output.DownloadURL,
		ExpiresAt:   output.ExpiresAt,
	}
}
