package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// Uploader pushes generated image/metadata pairs to an S3-compatible
// bucket and builds the public URLs they are served under.
//
// Object keys mirror the local layout: images/<id>.png and
// metadata/<id>.json.
type Uploader struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewUploader connects to the object store described by the settings.
//
// The endpoint is a host:port without scheme; StorageUseSSL selects the
// scheme. When StoragePublicURL is empty, public URLs default to
// <scheme>://<endpoint>/<bucket>.
func NewUploader(settings *config.Settings) (*Uploader, error) {
	client, err := minio.New(settings.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.StorageAccessKey, settings.StorageSecretKey, ""),
		Secure: settings.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connecting to %s: %w", settings.StorageEndpoint, err)
	}

	base := strings.TrimSuffix(settings.StoragePublicURL, "/")
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimSuffix(client.EndpointURL().String(), "/"), settings.StorageBucket)
	}

	return &Uploader{
		client:        client,
		bucket:        settings.StorageBucket,
		publicBaseURL: base,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("storage: checking bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("storage: creating bucket %s: %w", u.bucket, err)
	}
	return nil
}

// UploadToken uploads a token's image and metadata files and returns
// their public URLs. The local files stay in place; a failed upload does
// not undo them.
func (u *Uploader) UploadToken(ctx context.Context, token *model.Token) (imageURL, metadataURL string, err error) {
	imageKey := path.Join("images", token.ImageFileName())
	_, err = u.client.FPutObject(ctx, u.bucket, imageKey, token.ImagePath,
		minio.PutObjectOptions{ContentType: "image/png"})
	if err != nil {
		return "", "", fmt.Errorf("storage: uploading %s: %w", imageKey, err)
	}

	metadataKey := path.Join("metadata", token.MetadataFileName())
	_, err = u.client.FPutObject(ctx, u.bucket, metadataKey, token.MetadataPath,
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", "", fmt.Errorf("storage: uploading %s: %w", metadataKey, err)
	}

	return u.objectURL(imageKey), u.objectURL(metadataKey), nil
}

// ImageBaseURL returns the public URL prefix of uploaded images.
func (u *Uploader) ImageBaseURL() string {
	return u.publicBaseURL + "/images"
}

// MetadataBaseURL returns the public URL prefix of uploaded metadata.
func (u *Uploader) MetadataBaseURL() string {
	return u.publicBaseURL + "/metadata"
}

// ImageURL returns the public URL of a token's image.
func (u *Uploader) ImageURL(tokenID uint64) string {
	return fmt.Sprintf("%s/%d.png", u.ImageBaseURL(), tokenID)
}

// MetadataURL returns the public URL of a token's metadata.
func (u *Uploader) MetadataURL(tokenID uint64) string {
	return fmt.Sprintf("%s/%d.json", u.MetadataBaseURL(), tokenID)
}

func (u *Uploader) objectURL(key string) string {
	return u.publicBaseURL + "/" + key
}
