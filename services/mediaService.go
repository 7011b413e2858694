package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/jeevanprakash/donatex/config"
	errs "github.com/jeevanprakash/donatex/errors"
)

// MaxPanDocumentSize caps uploaded PAN documents at 5 MB.
const MaxPanDocumentSize = 5 * 1024 * 1024

var allowedPanExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// MediaService validates and stores uploaded PAN documents. Files go to S3
// when a bucket is configured, otherwise to local disk.
type MediaService interface {
	ValidateAndSavePanDocument(fileHeader *multipart.FileHeader, userID uint) (string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func checkPanDocumentSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxPanDocumentSize {
		return errs.New("pan document exceeds the 5MB size limit", http.StatusBadRequest)
	}
	return nil
}

func checkPanDocumentExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPanExtensions[ext] {
		return "", errs.New("unsupported pan document type, use pdf, jpg, jpeg or png", http.StatusBadRequest)
	}
	return ext, nil
}

// scanPanDocument is a placeholder for an integrity/virus scan. The current
// check only rejects empty files.
func scanPanDocument(data []byte) error {
	if len(data) == 0 {
		return errs.New("pan document is empty", http.StatusBadRequest)
	}
	return nil
}

func generateUniqueFilename(userID uint, extension string) string {
	timestamp := time.Now().Unix()
	randomUUID := uuid.New().String()
	return fmt.Sprintf("user_%d_%d_%s%s", userID, timestamp, randomUUID, extension)
}

func (m *mediaService) ValidateAndSavePanDocument(fileHeader *multipart.FileHeader, userID uint) (string, error) {
	if fileHeader == nil {
		return "", errs.New("pan document is required", http.StatusBadRequest)
	}
	if err := checkPanDocumentSize(fileHeader); err != nil {
		return "", err
	}
	ext, err := checkPanDocumentExtension(fileHeader.Filename)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open pan document: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read pan document: %v", err)
	}
	if err := scanPanDocument(data); err != nil {
		return "", err
	}

	// Image uploads are decoded and re-encoded so that oversized camera shots
	// and malformed files never reach storage as-is.
	if ext != ".pdf" {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return "", errs.New("pan document image could not be decoded", http.StatusBadRequest)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
			return "", fmt.Errorf("failed to re-encode pan document: %v", err)
		}
		data = buf.Bytes()
		ext = ".jpg"
	}

	filename := generateUniqueFilename(userID, ext)

	if m.Config.PanDocumentBucket != "" {
		return m.uploadToS3(data, filename)
	}
	return m.saveToDisk(data, filename)
}

func (m *mediaService) saveToDisk(data []byte, filename string) (string, error) {
	if err := os.MkdirAll(m.Config.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}
	destPath := filepath.Join(m.Config.UploadDir, filename)
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store pan document: %v", err)
	}
	return destPath, nil
}

func (m *mediaService) uploadToS3(data []byte, filename string) (string, error) {
	client, err := m.createS3Client()
	if err != nil {
		return "", err
	}

	key := "pan_documents/" + filename
	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: &m.Config.PanDocumentBucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload pan document to S3: %v", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.Config.PanDocumentBucket, key)
	log.Printf("stored pan document at %s", url)
	return url, nil
}

func (m *mediaService) createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(m.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}
