// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object store for archiving
// uploaded template originals. It wraps the AWS SDK v2 and is configured
// for path-style access so MinIO and CEPH endpoints work unchanged.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// docxContentType is the media type of .docx uploads.
const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Client wraps an S3 client for the template archive bucket. The bucket
// is private; archived originals are only read back by the application.
type Client struct {
	s3     *s3.Client
	bucket string
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if the bucket or credentials are not configured, allowing
// the app to run without an archive.
func New(endpoint, region, accessKey, secretKey, bucket string) (*Client, error) {
	if bucket == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
	}

	return &Client{
		s3:     s3.New(opts),
		bucket: bucket,
	}, nil
}

// ArchiveTemplate stores a template's original .docx bytes under
// templates/<id>.docx.
func (c *Client) ArchiveTemplate(ctx context.Context, id string, data []byte) error {
	key := templateKey(id)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(docxContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 archive %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FetchTemplate retrieves an archived template binary.
func (c *Client) FetchTemplate(ctx context.Context, id string) ([]byte, error) {
	key := templateKey(id)
	output, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 fetch %s/%s: %w", c.bucket, key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", c.bucket, key, err)
	}
	return data, nil
}

// DeleteTemplate removes an archived template binary.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	key := templateKey(id)
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

func templateKey(id string) string {
	return "templates/" + id + ".docx"
}
