package entity

// JobProgress は写真ステータスの集計結果を表します
type JobProgress struct {
	Status    UploadJobStatus
	Completed int
	Failed    int
}

// ComputeJobProgress は写真の現在ステータスからジョブの導出ステータスと
// カウンタを再計算します。カウントが唯一の情報源であり、ステータスは常に
// カウントから導出されます（差分更新はしません）
func ComputeJobProgress(photos []*Photo) JobProgress {
	var completed, failed int
	for _, p := range photos {
		switch p.Status {
		case PhotoStatusCompleted:
			completed++
		case PhotoStatusFailed:
			failed++
		}
	}

	total := len(photos)
	progress := JobProgress{Completed: completed, Failed: failed}

	if completed+failed < total {
		progress.Status = UploadJobStatusInProgress
		return progress
	}

	switch {
	case completed == total:
		progress.Status = UploadJobStatusCompleted
	case failed == total:
		progress.Status = UploadJobStatusFailed
	default:
		progress.Status = UploadJobStatusPartialFailure
	}
	return progress
}
