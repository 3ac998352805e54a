package valueobject

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	PhotoNameMaxLength = 255
)

var (
	ErrPhotoNameEmpty          = errors.New("photo name cannot be empty")
	ErrPhotoNameTooLong        = errors.New("photo name too long")
	ErrPhotoNameForbiddenChars = errors.New("photo name contains forbidden characters")
	ErrPhotoNameReserved       = errors.New("photo name is reserved")
)

// forbiddenPhotoChars は写真名に使用できない文字
var forbiddenPhotoChars = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}

// PhotoName はクライアントが指定した元のファイル名を表す値オブジェクト
type PhotoName struct {
	value string
}

// NewPhotoName は文字列からPhotoNameを生成します
func NewPhotoName(name string) (PhotoName, error) {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return PhotoName{}, ErrPhotoNameEmpty
	}

	if trimmed == "." || trimmed == ".." {
		return PhotoName{}, ErrPhotoNameReserved
	}

	if utf8.RuneCountInString(trimmed) > PhotoNameMaxLength {
		return PhotoName{}, ErrPhotoNameTooLong
	}

	for _, char := range forbiddenPhotoChars {
		if strings.Contains(trimmed, char) {
			return PhotoName{}, ErrPhotoNameForbiddenChars
		}
	}

	return PhotoName{value: trimmed}, nil
}

// ReconstructPhotoName はDBからPhotoNameを復元します
func ReconstructPhotoName(value string) PhotoName {
	return PhotoName{value: value}
}

// Value は値を返します
func (pn PhotoName) Value() string {
	return pn.value
}

// String は文字列を返します（Stringerインターフェース）
func (pn PhotoName) String() string {
	return pn.value
}

// IsEmpty は空かどうかを判定します
func (pn PhotoName) IsEmpty() bool {
	return pn.value == ""
}

// Equals は等価性を判定します
func (pn PhotoName) Equals(other PhotoName) bool {
	return pn.value == other.value
}

// Extension は拡張子を返します（ドット付き）
func (pn PhotoName) Extension() string {
	return filepath.Ext(pn.value)
}

// BaseName は拡張子を除いたファイル名を返します
func (pn PhotoName) BaseName() string {
	ext := filepath.Ext(pn.value)
	return strings.TrimSuffix(pn.value, ext)
}
