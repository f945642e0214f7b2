package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"livewall-server/internal/model"
	"livewall-server/internal/testutils"
)

func doJSON(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createMessage(t *testing.T, r http.Handler, message string) model.Submission {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/uploads", map[string]string{"message": message})
	if w.Code != http.StatusCreated {
		t.Fatalf("create 期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}
	var s model.Submission
	_ = json.Unmarshal(w.Body.Bytes(), &s)
	return s
}

// 测试内容：验证 multipart 投稿上传照片并返回投稿信息。
func TestCreateUpload_Multipart(t *testing.T) {
	r, objects := setupTestRouter(t)

	req := multipartRequest(t, "/uploads",
		map[string]string{"message": " hi ", "username": "guest", "email": "g@example.com"},
		[]formFile{pngFile("photo", "a.png")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	var s model.Submission
	_ = json.Unmarshal(w.Body.Bytes(), &s)
	if s.ID == "" || s.Status != model.SubmissionPending || s.Message != "hi" || s.Email != "g@example.com" {
		t.Fatalf("响应字段不正确: %+v", s)
	}
	if !objects.Has(s.PhotoURL) {
		t.Fatalf("期望照片已上传: %s", s.PhotoURL)
	}
}

func TestCreateUpload_RequiresContent(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads", map[string]string{"message": "  "}, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Either a photo or message") {
		t.Fatalf("错误信息不正确: %s", w.Body.String())
	}
}

// 测试内容：验证非图片类型与超出大小限制的文件被拒绝。
func TestCreateUpload_RejectsInvalidFiles(t *testing.T) {
	r, objects := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads", nil, []formFile{
		{field: "photo", filename: "notes.txt", contentType: "text/plain", data: []byte("hello")},
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非图片期望 400，实际为 %d", w.Code)
	}

	big := make([]byte, 1024*1024+1)
	copy(big, testutils.MinimalPNG())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads", nil, []formFile{
		{field: "photo", filename: "big.png", contentType: "image/png", data: big},
	}))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "File too large") {
		t.Fatalf("超限文件期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
	if objects.Count() != 0 {
		t.Fatalf("被拒绝的文件不应写入存储")
	}
}

func TestCreateUpload_StorageFailure(t *testing.T) {
	r, objects := setupTestRouter(t)
	objects.PutErr = fmt.Errorf("S3 access denied for bucket wall")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads", nil, []formFile{pngFile("photo", "a.png")}))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际为 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "access denied") {
		t.Fatalf("期望返回存储错误描述，实际为 %s", w.Body.String())
	}
}

// 测试内容：验证批量上传数量限制与部分失败语义。
func TestCreateBatchUpload(t *testing.T) {
	r, objects := setupTestRouter(t)
	objects.FailOnFilename["b.png"] = true

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads/batch", map[string]string{"message": "booth"}, []formFile{
		pngFile("photos", "a.png"), pngFile("photos", "b.png"), pngFile("photos", "c.png"),
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}
	var created []model.Submission
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if len(created) != 2 {
		t.Fatalf("期望 2 条，实际为 %d", len(created))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads/batch", nil, []formFile{
		pngFile("photos", "1.png"), pngFile("photos", "2.png"), pngFile("photos", "3.png"), pngFile("photos", "4.png"),
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("超出批量上限期望 400，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/uploads/batch", map[string]string{"message": "x"}, nil))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "No files provided") {
		t.Fatalf("无文件期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：验证审核、批量审核、上墙、列表筛选与删除的完整流程。
func TestUploadLifecycle(t *testing.T) {
	r, _ := setupTestRouter(t)

	a := createMessage(t, r, "a")
	b := createMessage(t, r, "b")

	w := doJSON(r, http.MethodPatch, "/uploads/"+a.ID, map[string]string{"action": "approve"})
	if w.Code != http.StatusOK {
		t.Fatalf("approve 期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPatch, "/uploads/"+a.ID, map[string]string{"action": "publish"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法 action 期望 400，实际为 %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/uploads/bulk", map[string]any{"ids": []string{a.ID, b.ID, "nope"}, "action": "reject"})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk 期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	var bulk struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &bulk)
	if bulk.ModifiedCount != 2 {
		t.Fatalf("期望 modifiedCount=2，实际为 %d", bulk.ModifiedCount)
	}

	w = doJSON(r, http.MethodPatch, "/uploads/bulk", map[string]any{"ids": []string{}, "action": "reject"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("空 ids 期望 400，实际为 %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/uploads/"+b.ID+"/displayed", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"displayed":true`) {
		t.Fatalf("displayed 期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/uploads?status=rejected&displayed=not-displayed", nil)
	var list struct {
		Uploads    []model.Submission `json:"uploads"`
		Total      int64              `json:"total"`
		TotalPages int                `json:"totalPages"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.Total != 1 || list.Uploads[0].ID != a.ID || list.TotalPages != 1 {
		t.Fatalf("筛选结果不正确: %s", w.Body.String())
	}

	w = doJSON(r, http.MethodDelete, "/uploads/"+a.ID, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Upload deleted successfully") {
		t.Fatalf("delete 期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/uploads/"+a.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("删除后期望 404，实际为 %d", w.Code)
	}
}

func TestUploadNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	cases := []struct {
		method string
		target string
		body   any
	}{
		{http.MethodGet, "/uploads/missing", nil},
		{http.MethodPatch, "/uploads/missing", map[string]string{"action": "approve"}},
		{http.MethodPatch, "/uploads/missing/displayed", nil},
		{http.MethodDelete, "/uploads/missing", nil},
	}
	for _, tc := range cases {
		w := doJSON(r, tc.method, tc.target, tc.body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s 期望 404，实际为 %d", tc.method, tc.target, w.Code)
		}
	}
}

// 测试内容：验证未声明长度的上传在读取中超限时返回 413，而非表单错误。
func TestUploads_ChunkedBodyOverLimit(t *testing.T) {
	r, objects := setupTestRouter(t)
	capped := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, 2048)
		r.ServeHTTP(w, req)
	})

	data := append(testutils.MinimalPNG(), bytes.Repeat([]byte{0}, 8*1024)...)
	for _, tc := range []struct {
		target string
		field  string
	}{
		{"/uploads", "photo"},
		{"/uploads/batch", "photos"},
	} {
		req := multipartRequest(t, tc.target, map[string]string{"message": "hi"}, []formFile{{field: tc.field, filename: "big.png", contentType: "image/png", data: data}})
		req.ContentLength = -1
		w := httptest.NewRecorder()
		capped.ServeHTTP(w, req)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("%s: 期望 413，实际为 %d body=%s", tc.target, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Request body too large") {
			t.Fatalf("%s: 非预期响应 %s", tc.target, w.Body.String())
		}
	}
	if objects.Count() != 0 {
		t.Fatalf("期望未写入任何对象，实际为 %d", objects.Count())
	}
}
