// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_Upload writes a snapshot to a real bucket and reads it
// back. Requires AWS credentials and HNVCTL_TEST_BUCKET.
func TestIntegration_Upload(t *testing.T) {
	bucket := os.Getenv("HNVCTL_TEST_BUCKET")
	if bucket == "" {
		t.Skip("HNVCTL_TEST_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx, WithProfile(os.Getenv("AWS_PROFILE")))
	require.NoError(t, err)
	client := NewS3(cfg, WithEndpoint(os.Getenv("HNVCTL_TEST_S3_ENDPOINT")))

	loc := Location{Bucket: bucket, Key: fmt.Sprintf("hnvctl-test/%d.json", time.Now().UnixNano())}
	data := []byte(`{"logicalNetworks":[]}`)

	require.NoError(t, Upload(ctx, client, loc, data, "application/json"))
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{
			Bucket: awsv2.String(loc.Bucket),
			Key:    awsv2.String(loc.Key),
		})
	}()

	result, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	require.NoError(t, err)
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, data, body)
	assert.Equal(t, "application/json", awsv2.ToString(result.ContentType))
}
