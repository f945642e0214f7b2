package utils

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"livewall-server/internal/consts"
)

// ResolveImageContentType 校验上传图片的 MIME 类型。
// 优先使用表单中声明的 Content-Type，缺失或为通用二进制类型时按文件头嗅探。
func ResolveImageContentType(declared string, reader io.ReadSeeker) (string, bool, string) {
	contentType := normalizeContentType(declared)
	if contentType == "" || contentType == "application/octet-stream" {
		sniffed, err := sniffContentType(reader)
		if err != nil {
			return "", false, "Failed to read uploaded file"
		}
		contentType = sniffed
	}

	if !IsAllowedImageType(contentType) {
		return contentType, false, "Only image files (jpg, jpeg, png, gif, webp) are allowed"
	}
	return contentType, true, ""
}

// IsAllowedImageType 判断 MIME 类型是否在允许的图片类型内
func IsAllowedImageType(contentType string) bool {
	mediaType := normalizeContentType(contentType)
	subtype, found := strings.CutPrefix(mediaType, "image/")
	if !found {
		return false
	}
	for _, allowed := range consts.AllowedImageSubtypes {
		if subtype == allowed {
			return true
		}
	}
	return false
}

func normalizeContentType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return strings.ToLower(mediaType)
}

func sniffContentType(reader io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	// 重置读取位置
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return normalizeContentType(http.DetectContentType(buffer[:n])), nil
}
