package valueobject

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMimeType     = errors.New("invalid MIME type")
	ErrUnsupportedMimeType = errors.New("unsupported MIME type")
)

// allowedImageMimeTypes はアップロードを許可する画像MIMEタイプの固定リスト
var allowedImageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/heic": {},
	"image/heif": {},
	"image/avif": {},
	"image/tiff": {},
}

// MimeType は写真のMIMEタイプを表す値オブジェクト
// 許可リストに含まれる画像タイプのみ生成できます
type MimeType struct {
	value string
}

// NewMimeType は文字列からMimeTypeを生成します
func NewMimeType(mimeType string) (MimeType, error) {
	trimmed := strings.TrimSpace(mimeType)

	if trimmed == "" {
		return MimeType{}, ErrInvalidMimeType
	}

	// 基本的な形式チェック（type/subtype）
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return MimeType{}, ErrInvalidMimeType
	}

	value := strings.ToLower(trimmed)
	if _, ok := allowedImageMimeTypes[value]; !ok {
		return MimeType{}, ErrUnsupportedMimeType
	}

	return MimeType{value: value}, nil
}

// ReconstructMimeType はDBからMimeTypeを復元します
func ReconstructMimeType(value string) MimeType {
	return MimeType{value: value}
}

// Value は値を返します
func (m MimeType) Value() string {
	return m.value
}

// String は文字列を返します（Stringerインターフェース）
func (m MimeType) String() string {
	return m.value
}

// Subtype はMIMEタイプのサブタイプを返します（例: "jpeg", "png"）
func (m MimeType) Subtype() string {
	parts := strings.Split(m.value, "/")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// Equals は等価性を判定します
func (m MimeType) Equals(other MimeType) bool {
	return m.value == other.value
}
