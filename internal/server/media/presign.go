package media

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/messenger/internal/netx"
	sc "github.com/dmitrijs2005/messenger/internal/server/config"
)

const presignExpiry = 15 * time.Minute

// PresignUploader stores avatars via presigned PUT URLs instead of streaming
// through the SDK. Useful behind proxies that only allow plain HTTPS out.
type PresignUploader struct {
	config *sc.Config
}

// NewPresignUploader constructs a presign-based uploader.
func NewPresignUploader(cfg *sc.Config) *PresignUploader {
	return &PresignUploader{config: cfg}
}

func (u *PresignUploader) getPresignClient() (*s3.PresignClient, error) {
	client, err := newClient(u.config)
	if err != nil {
		return nil, err
	}
	return newS3PresignClient(client), nil
}

// Upload reads the file at localPath, presigns a PUT for a fresh storage key,
// pushes the bytes over plain HTTP, and returns the object's public URL.
func (u *PresignUploader) Upload(ctx context.Context, localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", localPath, err)
	}

	pc, err := u.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := u.config.S3Bucket
	key := avatarStorageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}

	if err := netx.PutPresigned(req.URL, data, "image/png"); err != nil {
		return "", fmt.Errorf("uploading %s: %w", localPath, err)
	}

	return publicURL(u.config, key), nil
}
