package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/config"
	"github.com/infixtech/ixtportal/internal/server/repositories/repomanager"
)

// test seams
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

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

// PhotoService hands out presigned S3 URLs for profile photos. The bytes
// never pass through the server.
type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *PhotoService {
	return &PhotoService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("service", "photos"),
		now:         time.Now,
	}
}

// ProfilePhotoKey builds a fresh object key under profiles/<yyyy>/<mm>/.
func ProfilePhotoKey(at time.Time) string {
	return fmt.Sprintf("profiles/%04d/%02d/%s", at.Year(), int(at.Month()), uuid.New())
}

func (s *PhotoService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// ProfilePhotoUploadURL returns a presigned PUT URL for a new photo object
// and records its key on the account. A previous photo is left in the bucket.
func (s *PhotoService) ProfilePhotoUploadURL(ctx context.Context, accountID string) (key, url string, err error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		s.logger.Error(ctx, "s3 client setup failed", "error", err)
		return "", "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key = ProfilePhotoKey(s.now())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PhotoURLValidityDuration))
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "error", err)
		return "", "", common.ErrorInternal
	}

	if err := s.repomanager.Accounts(s.db).SetProfilePhoto(ctx, accountID, key); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", err
		}
		s.logger.Error(ctx, "profile photo key update failed", "account_id", accountID, "error", err)
		return "", "", common.ErrorInternal
	}

	return key, req.URL, nil
}

// ProfilePhotoURL returns a presigned GET URL for the account's photo, or
// common.ErrorNotFound when none was uploaded.
func (s *PhotoService) ProfilePhotoURL(ctx context.Context, accountID string) (string, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		s.logger.Error(ctx, "account lookup failed", "account_id", accountID, "error", err)
		return "", common.ErrorInternal
	}
	if account.ProfilePhotoKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		s.logger.Error(ctx, "s3 client setup failed", "error", err)
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := account.ProfilePhotoKey

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PhotoURLValidityDuration))
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "error", err)
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
