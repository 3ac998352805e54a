package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	StorageKeyMaxBytes = 1024
)

var (
	ErrInvalidStorageKey = errors.New("invalid storage key")
)

// StorageKey はオブジェクトストア内のキーを表す値オブジェクト
// 形式: {photo_id}/{sanitized_name}
// photo_idプレフィックスにより写真間でキーが衝突することはなく、
// 生成後に再計算されることもありません
type StorageKey struct {
	value string
}

// NewStorageKey は写真IDと元のファイル名からStorageKeyを導出します
func NewStorageKey(photoID uuid.UUID, name PhotoName) StorageKey {
	return StorageKey{
		value: fmt.Sprintf("%s/%s", photoID.String(), sanitizeKeyName(name.Value())),
	}
}

// ReconstructStorageKey はDBからStorageKeyを復元します
func ReconstructStorageKey(key string) (StorageKey, error) {
	prefix, _, found := strings.Cut(key, "/")
	if !found {
		return StorageKey{}, fmt.Errorf("%w: missing photo id prefix", ErrInvalidStorageKey)
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return StorageKey{}, fmt.Errorf("%w: %v", ErrInvalidStorageKey, err)
	}
	if len(key) > StorageKeyMaxBytes {
		return StorageKey{}, fmt.Errorf("%w: key too long", ErrInvalidStorageKey)
	}
	return StorageKey{value: key}, nil
}

// sanitizeKeyName はファイル名をオブジェクトキーとして安全な形に変換します
// 英数字と . _ - 以外はハイフンに置き換えます
func sanitizeKeyName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Value はキー文字列を返します
func (k StorageKey) Value() string {
	return k.value
}

// PhotoID はキーから写真IDを取得します
func (k StorageKey) PhotoID() (uuid.UUID, error) {
	prefix, _, _ := strings.Cut(k.value, "/")
	return uuid.Parse(prefix)
}

// String はキー文字列を返します（Stringerインターフェース）
func (k StorageKey) String() string {
	return k.value
}

// IsEmpty はキーが空かどうかを判定します
func (k StorageKey) IsEmpty() bool {
	return k.value == ""
}
