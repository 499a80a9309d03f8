// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"kursusku_backend/internals/configs"
)

// OSSClient adalah adapter blob store di atas Aliyun OSS.
// Bucket di-resolve per panggilan supaya satu client bisa melayani
// bucket artifact & bucket attachment sekaligus.
type OSSClient struct {
	cli *oss.Client
}

func NewOSSClientFromEnv() (*OSSClient, error) {
	endpoint := configs.OSSEndpoint
	keyID := configs.OSSAccessKeyID
	secret := configs.OSSAccessKeySecret
	if endpoint == "" || keyID == "" || secret == "" {
		return nil, fmt.Errorf("konfigurasi OSS belum lengkap (OSS_ENDPOINT / OSS_ACCESS_KEY_*)")
	}
	cli, err := oss.New(endpoint, keyID, secret)
	if err != nil {
		return nil, fmt.Errorf("init OSS client: %w", err)
	}
	return &OSSClient{cli: cli}, nil
}

func (c *OSSClient) bucket(name string) (*oss.Bucket, error) {
	b, err := c.cli.Bucket(name)
	if err != nil {
		return nil, fmt.Errorf("resolve bucket %q: %w", name, err)
	}
	return b, nil
}

func (c *OSSClient) Put(_ context.Context, bucket, key string, data []byte, contentType string) error {
	b, err := c.bucket(bucket)
	if err != nil {
		return err
	}
	opts := []oss.Option{}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := b.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *OSSClient) Get(_ context.Context, bucket, key string) ([]byte, error) {
	b, err := c.bucket(bucket)
	if err != nil {
		return nil, err
	}
	rc, err := b.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (c *OSSClient) Delete(_ context.Context, bucket, key string) error {
	b, err := c.bucket(bucket)
	if err != nil {
		return err
	}
	if err := b.DeleteObject(key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (c *OSSClient) PresignedGetURL(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	b, err := c.bucket(bucket)
	if err != nil {
		return "", err
	}
	url, err := b.SignURL(key, oss.HTTPGet, int64(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("sign url %s/%s: %w", bucket, key, err)
	}
	return url, nil
}
