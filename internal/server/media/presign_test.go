package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func stubAWSSeams(t *testing.T) {
	t.Helper()
	origLoad, origNew, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestPresignUpload_ReturnsPublicURL(t *testing.T) {
	stubAWSSeams(t)

	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	origPresignPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPresignPut })

	var gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: ts.URL + "/" + *in.Key}, nil
	}

	u := NewPresignUploader(testConfig())
	url, err := u.Upload(context.Background(), writeTempAvatar(t))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if !strings.HasPrefix(gotKey, "avatars/") || !strings.HasSuffix(gotKey, ".png") {
		t.Fatalf("unexpected storage key: %q", gotKey)
	}
	if string(gotBody) != "png-bytes" {
		t.Fatalf("unexpected body: %q", gotBody)
	}
	want := "http://127.0.0.1:9000/media/" + gotKey
	if url != want {
		t.Fatalf("unexpected URL: got %q want %q", url, want)
	}
}

func TestPresignUpload_PresignError(t *testing.T) {
	stubAWSSeams(t)

	origPresignPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPresignPut })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("signer unavailable")
	}

	u := NewPresignUploader(testConfig())
	_, err := u.Upload(context.Background(), writeTempAvatar(t))
	if err == nil || !strings.Contains(err.Error(), "signer unavailable") {
		t.Fatalf("expected presign failure, got %v", err)
	}
}

func TestPresignUpload_RejectedPut(t *testing.T) {
	stubAWSSeams(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	origPresignPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPresignPut })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: ts.URL}, nil
	}

	u := NewPresignUploader(testConfig())
	_, err := u.Upload(context.Background(), writeTempAvatar(t))
	if err == nil || !strings.Contains(err.Error(), "upload failed") {
		t.Fatalf("expected rejected upload, got %v", err)
	}
}
