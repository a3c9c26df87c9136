// Package media issues presigned S3 URLs for post images and profile pictures.
// Clients upload straight to object storage and store the returned public URL
// in Post.ImageURL or User.ProfilePictureURL.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/blogcore/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Kind selects the key prefix of an upload.
type Kind string

const (
	KindPostImage      Kind = "posts"
	KindProfilePicture Kind = "users"
)

// ParseKind accepts the kind names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "post", "posts", "image":
		return KindPostImage, nil
	case "user", "users", "profile", "avatar":
		return KindProfilePicture, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// Upload describes one presigned upload slot.
type Upload struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

type Presigner struct {
	config *sc.Config
	now    func() time.Time
}

func NewPresigner(cfg *sc.Config) *Presigner {
	return &Presigner{config: cfg, now: time.Now}
}

func (p *Presigner) storageKey(kind Kind) string {
	d := p.now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v", kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (p *Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3AccessKey,
			p.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload reserves a fresh object key for kind and returns a presigned
// PUT URL for it together with the URL the object will be served from.
func (p *Presigner) PresignUpload(ctx context.Context, kind Kind) (*Upload, error) {
	if kind != KindPostImage && kind != KindProfilePicture {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := p.config.S3Bucket
	key := p.storageKey(kind)
	issued := p.now()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.config.PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &Upload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: p.PublicURL(key),
		ExpiresAt: issued.Add(p.config.PresignExpiry),
	}, nil
}

// PresignDownload returns a presigned GET URL for key, for buckets that are
// not publicly readable.
func (p *Presigner) PresignDownload(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.config.PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}

// PublicURL is where key is served from: S3PublicBaseURL when configured,
// otherwise the path-style endpoint URL.
func (p *Presigner) PublicURL(key string) string {
	if p.config.S3PublicBaseURL != "" {
		return strings.TrimRight(p.config.S3PublicBaseURL, "/") + "/" + key
	}
	return strings.TrimRight(p.config.S3BaseEndpoint, "/") + "/" + p.config.S3Bucket + "/" + key
}
