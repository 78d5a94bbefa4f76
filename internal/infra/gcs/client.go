// internal/infra/gcs/client.go
package gcsinfra

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ClientWrapper は GCS クライアントとデフォルトバケットをラップします。
type ClientWrapper struct {
	Client *storage.Client
	Bucket string
}

// NewClient は GCS クライアントを初期化します。
// credentialsFile が空文字の場合、ADC(Application Default Credentials)を使用します。
func NewClient(ctx context.Context, bucket string, credentialsFile string) (*ClientWrapper, error) {
	b := strings.TrimSpace(bucket)
	if b == "" {
		return nil, fmt.Errorf("gcs bucket is empty (set GCS_BUCKET)")
	}

	var (
		client *storage.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}

	log.Printf("[gcs] connected (bucket: %s)", b)
	return &ClientWrapper{Client: client, Bucket: b}, nil
}

// Close は GCS クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
