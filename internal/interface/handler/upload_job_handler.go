package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/dto/request"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/dto/response"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/middleware"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/presenter"
	uploadcmd "github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/command"
	uploadqry "github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// UploadJobHandler はアップロードジョブ関連のHTTPハンドラーです
type UploadJobHandler struct {
	createJobCommand       *uploadcmd.CreateUploadJobCommand
	reportStartedCommand   *uploadcmd.ReportPhotoStartedCommand
	reportCompletedCommand *uploadcmd.ReportPhotoCompletedCommand
	reportFailedCommand    *uploadcmd.ReportPhotoFailedCommand
	getJobQuery            *uploadqry.GetUploadJobQuery
	listJobsQuery          *uploadqry.ListUploadJobsQuery
	getDownloadURLQuery    *uploadqry.GetPhotoDownloadURLQuery
}

// NewUploadJobHandler は新しいUploadJobHandlerを作成します
func NewUploadJobHandler(
	createJobCommand *uploadcmd.CreateUploadJobCommand,
	reportStartedCommand *uploadcmd.ReportPhotoStartedCommand,
	reportCompletedCommand *uploadcmd.ReportPhotoCompletedCommand,
	reportFailedCommand *uploadcmd.ReportPhotoFailedCommand,
	getJobQuery *uploadqry.GetUploadJobQuery,
	listJobsQuery *uploadqry.ListUploadJobsQuery,
	getDownloadURLQuery *uploadqry.GetPhotoDownloadURLQuery,
) *UploadJobHandler {
	return &UploadJobHandler{
		createJobCommand:       createJobCommand,
		reportStartedCommand:   reportStartedCommand,
		reportCompletedCommand: reportCompletedCommand,
		reportFailedCommand:    reportFailedCommand,
		getJobQuery:            getJobQuery,
		listJobsQuery:          listJobsQuery,
		getDownloadURLQuery:    getDownloadURLQuery,
	}
}

// CreateJob はアップロードジョブを作成します
// 写真ごとにPresigned PUT URLを発行して返します
// POST /photos/jobs
func (h *UploadJobHandler) CreateJob(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req request.CreateUploadJobRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photos := make([]uploadcmd.PhotoInput, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, uploadcmd.PhotoInput{
			FileName: p.FileName,
			MimeType: p.MimeType,
			Size:     p.Size,
		})
	}

	output, err := h.createJobCommand.Execute(c.Request().Context(), uploadcmd.CreateUploadJobInput{
		OwnerID: userID,
		Photos:  photos,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.NewCreateUploadJobResponse(output))
}

// ListJobs は呼び出しユーザーのジョブ一覧を取得します
// GET /photos/jobs
func (h *UploadJobHandler) ListJobs(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req request.ListUploadJobsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid query parameters", nil)
	}

	output, err := h.listJobsQuery.Execute(c.Request().Context(), uploadqry.ListUploadJobsInput{
		UserID:   userID,
		Page:     req.Page,
		PageSize: req.PerPage,
	})
	if err != nil {
		return err
	}

	pagination := presenter.NewPagination(output.Page, output.PageSize, output.TotalCount)
	return presenter.List(c, response.NewUploadJobSummaryResponses(output.Jobs), pagination)
}

// GetJob はジョブのスナップショットを取得します
// GET /photos/jobs/:jobId
func (h *UploadJobHandler) GetJob(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return apperror.NewValidationError("invalid job ID", nil)
	}

	snapshot, err := h.getJobQuery.Execute(c.Request().Context(), uploadqry.GetUploadJobInput{
		JobID:  jobID,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.NewUploadJobResponse(snapshot))
}

// ReportStarted は写真のアップロード開始を記録します
// POST /photos/jobs/:jobId/photos/:photoId/started
func (h *UploadJobHandler) ReportStarted(c echo.Context) error {
	input, err := h.transitionInput(c)
	if err != nil {
		return err
	}

	if err := h.reportStartedCommand.Execute(c.Request().Context(), input); err != nil {
		return err
	}
	return presenter.NoContent(c)
}

// ReportCompleted は写真のアップロード完了を記録します
// POST /photos/jobs/:jobId/photos/:photoId/completed
func (h *UploadJobHandler) ReportCompleted(c echo.Context) error {
	input, err := h.transitionInput(c)
	if err != nil {
		return err
	}

	if err := h.reportCompletedCommand.Execute(c.Request().Context(), input); err != nil {
		return err
	}
	return presenter.NoContent(c)
}

// ReportFailed は写真のアップロード失敗を記録します
// POST /photos/jobs/:jobId/photos/:photoId/failed
func (h *UploadJobHandler) ReportFailed(c echo.Context) error {
	input, err := h.transitionInput(c)
	if err != nil {
		return err
	}

	if err := h.reportFailedCommand.Execute(c.Request().Context(), input); err != nil {
		return err
	}
	return presenter.NoContent(c)
}

// GetDownloadURL は完了済み写真のダウンロードURLを発行します
// GET /photos/jobs/:jobId/photos/:photoId/download-url
func (h *UploadJobHandler) GetDownloadURL(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return apperror.NewValidationError("invalid job ID", nil)
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		return apperror.NewValidationError("invalid photo ID", nil)
	}

	output, err := h.getDownloadURLQuery.Execute(c.Request().Context(), uploadqry.GetPhotoDownloadURLInput{
		JobID:   jobID,
		PhotoID: photoID,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.NewPhotoDownloadURLResponse(output))
}

// transitionInput はパスパラメータからステータスレポート入力を組み立てます
func (h *UploadJobHandler) transitionInput(c echo.Context) (uploadcmd.ReportTransitionInput, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return uploadcmd.ReportTransitionInput{}, err
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return uploadcmd.ReportTransitionInput{}, apperror.NewValidationError("invalid job ID", nil)
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		return uploadcmd.ReportTransitionInput{}, apperror.NewValidationError("invalid photo ID", nil)
	}

	return uploadcmd.ReportTransitionInput{
		JobID:    jobID,
		PhotoID:  photoID,
		CallerID: userID,
	}, nil
}
