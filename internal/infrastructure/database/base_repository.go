package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はクエリ実行用のインターフェースを返す
// トランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// TxManager はトランザクションマネージャーを返す
func (r *BaseRepository) TxManager() *TxManager {
	return r.txManager
}

// HandleError はpgxのエラーをAppErrorに変換する
//
// 制約違反はスキーマの制約名からメッセージを組み立てます。
// upload_jobsとphotosは同一トランザクションで書き込まれるため、
// 制約名が分かればどちらの書き込みが弾かれたか特定できます。
func (r *BaseRepository) HandleError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFoundError("upload job")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperror.NewConflictError(conflictMessage(pgErr.ConstraintName))
		case "23503": // foreign_key_violation
			// photos.job_id参照切れ。集約単位で書き込む限り起きない
			return apperror.NewInternalError(err)
		case "23514": // check_violation
			return apperror.NewInternalError(err)
		}
	}

	return err
}

// conflictMessage は一意制約名をクライアント向けメッセージに変換する
func conflictMessage(constraint string) string {
	switch constraint {
	case "upload_jobs_pkey":
		return "upload job already exists"
	case "photos_pkey":
		return "photo already exists"
	case "photos_storage_key_key":
		return "storage key already in use"
	default:
		return "record already exists"
	}
}
