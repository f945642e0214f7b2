package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"

	"livewall-server/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const awsHostSuffix = ".amazonaws.com"

// S3Store 基于 minio-go 的 S3 兼容对象存储实现
type S3Store struct {
	client        *minio.Client
	endpoint      string
	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
	secure        bool
}

func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	if missing := cfg.MissingStorageFields(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required storage configuration: %s", strings.Join(missing, ", "))
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	lookup := minio.BucketLookupPath
	if isAWSEndpoint(endpoint) {
		lookup = minio.BucketLookupDNS
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	log.Printf("✅ 对象存储已配置: bucket=%s region=%s endpoint=%s", cfg.Bucket, region, endpoint)

	return &S3Store{
		client:        client,
		endpoint:      endpoint,
		bucket:        cfg.Bucket,
		region:        region,
		keyPrefix:     cfg.KeyPrefix,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		secure:        cfg.UseSSL,
	}, nil
}

// Put 以随机文件名（保留原扩展名）写入对象并返回公开 URL
func (s *S3Store) Put(ctx context.Context, obj Object) (string, error) {
	key := s.newKey(obj.Filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, obj.Reader, obj.Size, minio.PutObjectOptions{
		ContentType: obj.ContentType,
	})
	if err != nil {
		return "", s.describeUploadError(err)
	}

	return s.publicURL(key), nil
}

// Delete 删除 URL 对应的对象；非本存储的 URL 直接忽略
func (s *S3Store) Delete(ctx context.Context, rawURL string) error {
	key, ok := s.keyFromURL(rawURL)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3 delete %s failed: %w", key, err)
	}
	return nil
}

func (s *S3Store) newKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return s.keyPrefix + uuid.NewString() + ext
}

func (s *S3Store) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	if isAWSEndpoint(s.endpoint) {
		// us-east-1 使用不带区域的域名
		if s.region == "us-east-1" {
			return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
	return fmt.Sprintf("%s://%s/%s/%s", s.scheme(), s.endpoint, s.bucket, key)
}

func (s *S3Store) scheme() string {
	if s.secure {
		return "https"
	}
	return "http"
}

// keyFromURL 支持 public_base_url、AWS 虚拟主机、路径风格与 s3:// 四种形式
func (s *S3Store) keyFromURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	if s.publicBaseURL != "" && strings.HasPrefix(rawURL, s.publicBaseURL+"/") {
		return nonEmpty(strings.TrimPrefix(rawURL, s.publicBaseURL+"/"))
	}

	if strings.HasPrefix(rawURL, "s3://") {
		parts := strings.SplitN(strings.TrimPrefix(rawURL, "s3://"), "/", 2)
		if len(parts) != 2 {
			return "", false
		}
		return nonEmpty(parts[1])
	}

	if idx := strings.Index(rawURL, awsHostSuffix+"/"); idx >= 0 {
		return nonEmpty(rawURL[idx+len(awsHostSuffix)+1:])
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host != s.endpoint {
		return "", false
	}
	bucketPrefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, bucketPrefix) {
		return "", false
	}
	return nonEmpty(strings.TrimPrefix(u.Path, bucketPrefix))
}

// describeUploadError 将 S3 错误码转换为可读的配置排查提示
func (s *S3Store) describeUploadError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "PermanentRedirect", "AuthorizationHeaderMalformed":
		suggested := s.region
		if resp.Region != "" {
			suggested = resp.Region
		}
		return &UploadError{Kind: UploadErrorRegionMismatch, Err: err, Message: fmt.Sprintf(
			"S3 bucket region mismatch. The bucket '%s' appears to be in region '%s', but storage.region is set to '%s'. Please update storage.region=%s.",
			s.bucket, suggested, s.region, suggested)}
	case "NoSuchBucket":
		return &UploadError{Kind: UploadErrorNoSuchBucket, Err: err, Message: fmt.Sprintf(
			"S3 bucket '%s' does not exist. Please check storage.bucket.", s.bucket)}
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return &UploadError{Kind: UploadErrorBadCredentials, Err: err, Message: "Invalid storage credentials. Please check storage.access_key_id and storage.secret_access_key."}
	case "AccessDenied":
		return &UploadError{Kind: UploadErrorAccessDenied, Err: err, Message: "Access denied. Please check that the storage credentials have permission to upload to the bucket."}
	}
	return &UploadError{Kind: UploadErrorUnknown, Err: err, Message: "S3 upload failed: " + err.Error()}
}

func isAWSEndpoint(endpoint string) bool {
	return strings.HasSuffix(endpoint, awsHostSuffix)
}

func nonEmpty(key string) (string, bool) {
	return key, key != ""
}

type UploadErrorKind string

const (
	UploadErrorRegionMismatch UploadErrorKind = "region_mismatch"
	UploadErrorNoSuchBucket   UploadErrorKind = "no_such_bucket"
	UploadErrorBadCredentials UploadErrorKind = "bad_credentials"
	UploadErrorAccessDenied   UploadErrorKind = "access_denied"
	UploadErrorUnknown        UploadErrorKind = "unknown"
)

// UploadError 上传失败的分类错误
type UploadError struct {
	Kind    UploadErrorKind
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// AsUploadError 提取分类后的上传错误
func AsUploadError(err error) (*UploadError, bool) {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr, true
	}
	return nil, false
}
