package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"livewall-server/internal/config"
	"livewall-server/internal/modules/submission/repo"
	submissionservice "livewall-server/internal/modules/submission/service"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *testutils.MemoryObjectStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutils.SetupDB(t)
	objects := testutils.NewMemoryObjectStore()
	cfg := config.Config{Upload: config.UploadConfig{MaxFileSizeMB: 1, MaxBatchFiles: 3}}
	svc := submissionservice.New(platformservice.NewAppService(cfg, nil), repo.NewSubmissionRepository(gdb), objects)
	h := New(svc)

	r := gin.New()
	r.POST("/uploads", h.CreateUpload)
	r.POST("/uploads/batch", h.CreateBatchUpload)
	r.GET("/uploads", h.ListUploads)
	r.GET("/uploads/:id", h.GetUpload)
	r.PATCH("/uploads/bulk", h.BulkUpdateUploadStatus)
	r.PATCH("/uploads/:id", h.UpdateUploadStatus)
	r.PATCH("/uploads/:id/displayed", h.MarkUploadDisplayed)
	r.DELETE("/uploads/:id", h.DeleteUpload)
	return r, objects
}

type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files []formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		if f.contentType != "" {
			header.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(f.data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngFile(field, filename string) formFile {
	return formFile{field: field, filename: filename, contentType: "image/png", data: testutils.MinimalPNG()}
}
