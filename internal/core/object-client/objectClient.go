package objectclient

import (
	"context"
	"io"
)

// ObjectClient defines the object storage calls the parser needs to read
// inputs from and write extracted text to a bucket.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
