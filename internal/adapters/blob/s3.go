package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"barangay-pet-registry/internal/ports/photos"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config parametriza el backend S3/MinIO.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // opcional (MinIO)
	AccessKeyID     string // opcional: si falta, cadena de credenciales default
	SecretAccessKey string
	PathStyle       bool
	PublicBaseURL   string // opcional: base explícita para URLs públicas
}

// S3Store implementa photos.Store contra un bucket único. Las fotos se
// suben con ACL por defecto del bucket; la URL pública asume bucket
// legible públicamente (mismo modelo que el storage original).
type S3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
		}
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		region:  region,
		baseURL: base,
	}, nil
}

// OpenS3FromEnv construye el store desde env:
//
//	PHOTOS_S3_BUCKET (requerido)
//	PHOTOS_S3_REGION (default us-east-1)
//	PHOTOS_S3_ENDPOINT (opcional, MinIO)
//	PHOTOS_S3_PATH_STYLE=true|false
//	PHOTOS_S3_PUBLIC_URL (opcional)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (opcional)
func OpenS3FromEnv(ctx context.Context) (*S3Store, error) {
	bucket := os.Getenv("PHOTOS_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("PHOTOS_S3_BUCKET required for s3 driver")
	}
	return NewS3(ctx, S3Config{
		Bucket:          bucket,
		Region:          os.Getenv("PHOTOS_S3_REGION"),
		Endpoint:        os.Getenv("PHOTOS_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		PathStyle:       strings.EqualFold(os.Getenv("PHOTOS_S3_PATH_STYLE"), "true"),
		PublicBaseURL:   os.Getenv("PHOTOS_S3_PUBLIC_URL"),
	})
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, opts photos.PutOptions) error {
	if !opts.Overwrite {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
		if err == nil {
			return ErrExists
		}
	}

	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: r}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	_, err := s.client.PutObject(ctx, input)
	return err
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (s *S3Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3Store) Driver() photos.Driver { return photos.DriverS3 }
