package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"livewall-server/internal/config"
	"livewall-server/internal/storage"
	"livewall-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// openedPhotos 持有已打开的上传文件，请求结束时统一关闭
type openedPhotos struct {
	files []multipart.File
}

func (o *openedPhotos) Close() {
	for _, f := range o.files {
		_ = f.Close()
	}
}

// openPhoto 校验单个文件的大小与类型，并转换为对象存储的输入
func (o *openedPhotos) openPhoto(fh *multipart.FileHeader, limits config.UploadConfig) (*storage.Object, string) {
	maxSize := limits.MaxFileSizeBytes()
	if fh.Size > maxSize {
		return nil, fmt.Sprintf("File too large. Maximum size is %dMB", maxSize/(1024*1024))
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "Failed to read uploaded file"
	}
	o.files = append(o.files, file)

	contentType, ok, msg := utils.ResolveImageContentType(fh.Header.Get("Content-Type"), file)
	if !ok {
		return nil, msg
	}

	return &storage.Object{
		Reader:      file,
		Size:        fh.Size,
		ContentType: contentType,
		Filename:    fh.Filename,
	}, ""
}

// bodyTooLarge 请求体在读取中被 MaxBytesReader 截断（未声明长度的分块上传）时写 413
func bodyTooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
	return true
}
