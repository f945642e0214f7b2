package testutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"livewall-server/internal/storage"
)

// MemoryObjectStore 内存对象存储，用于替换 S3
type MemoryObjectStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte

	// PutErr 非空时所有上传失败
	PutErr error
	// FailOnFilename 指定文件名的上传失败，用于模拟批量上传的部分失败
	FailOnFilename map[string]bool
	// DeleteErr 非空时删除失败（对象保留）
	DeleteErr error
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: map[string][]byte{}, FailOnFilename: map[string]bool{}}
}

func (m *MemoryObjectStore) Put(_ context.Context, obj storage.Object) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PutErr != nil {
		return "", m.PutErr
	}
	if m.FailOnFilename[obj.Filename] {
		return "", errors.New("simulated upload failure: " + obj.Filename)
	}

	data, err := io.ReadAll(obj.Reader)
	if err != nil {
		return "", err
	}
	m.seq++
	url := fmt.Sprintf("https://wall.s3.amazonaws.com/uploads/obj-%d%s", m.seq, filepath.Ext(obj.Filename))
	m.objects[url] = data
	return url, nil
}

func (m *MemoryObjectStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.objects, url)
	return nil
}

// Has 判断 URL 对应的对象是否仍可取回
func (m *MemoryObjectStore) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}

func (m *MemoryObjectStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
