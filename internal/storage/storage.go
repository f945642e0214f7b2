package storage

import (
	"context"
	"io"
)

// Object 待写入对象存储的文件内容
type Object struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	// Filename 原始文件名，仅用于保留扩展名
	Filename string
}

// ObjectStore 对象存储能力：写入字节返回可访问 URL，按 URL 删除
type ObjectStore interface {
	Put(ctx context.Context, obj Object) (string, error)
	Delete(ctx context.Context, url string) error
}
