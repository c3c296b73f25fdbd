// Package storage stores product and profile images as opaque blobs.
// The production implementation keeps them in S3; an in-memory store
// backs tests and local development.
package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

// Thumbnails fit inside a 300x300 box, preserving aspect ratio.
const thumbnailSize = 300

type S3ImageStore struct {
	bucket   string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3ImageStore(region, bucket string) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "new aws session")
	}

	return &S3ImageStore{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(sess),
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, data []byte, mimeType string) (string, error) {
	id := uuid.NewString()
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(id),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", errors.Wrapf(model.ErrStorageError, "upload image: %v", err)
	}
	return id, nil
}

func (s *S3ImageStore) SaveThumbnail(ctx context.Context, data []byte, mimeType string) (string, error) {
	thumb, thumbType, err := MakeThumbnail(data, mimeType)
	if err != nil {
		return "", err
	}
	return s.Save(ctx, thumb, thumbType)
}

func (s *S3ImageStore) ThumbnailFrom(ctx context.Context, imageID string) (string, error) {
	body, mimeType, err := s.Open(ctx, imageID)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.Wrapf(model.ErrStorageError, "read image %s: %v", imageID, err)
	}
	return s.SaveThumbnail(ctx, data, mimeType)
}

func (s *S3ImageStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, "", errors.Wrapf(model.ErrNotFound, "image %s", id)
		}
		return nil, "", errors.Wrapf(model.ErrStorageError, "get image %s: %v", id, err)
	}
	return out.Body, aws.StringValue(out.ContentType), nil
}

func (s *S3ImageStore) Delete(ctx context.Context, id string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return errors.Wrapf(model.ErrStorageError, "delete image %s: %v", id, err)
	}
	return nil
}

// MakeThumbnail downscales an encoded image to fit the thumbnail box.
// PNG input stays PNG, everything else is re-encoded as JPEG.
func MakeThumbnail(data []byte, mimeType string) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrapf(model.ErrStorageError, "decode image: %v", err)
	}
	thumb := imaging.Fit(src, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if mimeType == "image/png" {
		if err := png.Encode(&buf, thumb); err != nil {
			return nil, "", errors.Wrapf(model.ErrStorageError, "encode thumbnail: %v", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", errors.Wrapf(model.ErrStorageError, "encode thumbnail: %v", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
