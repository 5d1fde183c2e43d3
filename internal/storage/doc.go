// Package storage uploads generated tokens to an S3-compatible object
// store using the MinIO client.
//
// Uploads are optional; generation works fully offline and the uploader
// only enters the pipeline when storage is configured.
//
//	uploader, err := storage.NewUploader(settings)
//	if err != nil {
//	    return err
//	}
//	if err := uploader.EnsureBucket(ctx); err != nil {
//	    return err
//	}
//	imageURL, metadataURL, err := uploader.UploadToken(ctx, token)
package storage
