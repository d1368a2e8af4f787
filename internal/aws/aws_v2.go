// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hnvctl/hnvctl/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
}

// Option customizes how AWS config is loaded. With no options the shell's
// AWS setup is inherited (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region from the env/profile chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// LoadAWSConfig loads AWS SDK v2 config with the default credential chain.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// NewS3 constructs an S3 client from cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// WithEndpoint points the client at an S3-compatible service such as MinIO.
// Path-style addressing is used since such services rarely resolve
// bucket subdomains.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// Location is an object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ParseLocation parses s3://bucket/key. ok is false when s is not an s3 URL,
// so callers can treat it as a local path instead.
func ParseLocation(s string) (loc Location, ok bool, err error) {
	if !strings.HasPrefix(s, "s3://") {
		return Location{}, false, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Location{}, true, fmt.Errorf("invalid s3 location %q: %w", s, err)
	}

	loc = Location{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	if loc.Bucket == "" || loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
		return Location{}, true, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", s)
	}
	return loc, true, nil
}

// ObjectPutter is the part of the S3 client Upload needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Upload writes body to loc.
func Upload(ctx context.Context, client ObjectPutter, loc Location, body []byte, contentType string) error {
	input := &s3v2.PutObjectInput{
		Bucket:        awsv2.String(loc.Bucket),
		Key:           awsv2.String(loc.Key),
		Body:          bytes.NewReader(body),
		ContentLength: awsv2.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = awsv2.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", loc, err)
	}
	log.Debugf("uploaded %d bytes to %s", len(body), loc)
	return nil
}
