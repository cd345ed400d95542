package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// maxUploadBytes mirrors the server body limit.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".csv":  true,
	".xlsx": true,
	".json": true,
	".md":   true,
}

type IUploadService interface {
	Store(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	uowFactory unitofwork.RepositoryFactory
	uploadDir  string
	baseURL    string
	logger     logger.ILogger
}

func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	uploadDir string,
	baseURL string,
	log logger.ILogger,
) IUploadService {
	return &uploadService{
		uowFactory: uowFactory,
		uploadDir:  uploadDir,
		baseURL:    baseURL,
		logger:     log,
	}
}

// Store writes the upload under a generated name so user-supplied file names
// never touch the filesystem, then records it for later session linking.
func (s *uploadService) Store(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if file == nil {
		return nil, serverutils.ErrAttachmentMissing
	}
	if file.Size > maxUploadBytes {
		return nil, serverutils.NewAppError(413, "Arquivo excede o limite de 10MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, serverutils.NewAppError(400, fmt.Sprintf("Tipo de arquivo não suportado: %s", ext))
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	id := uuid.New()
	storedName := id.String() + ext
	storedPath := filepath.Join(s.uploadDir, storedName)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	attachment := entity.Attachment{
		Id:          id,
		FileName:    filepath.Base(file.Filename),
		StoredPath:  storedPath,
		ContentType: file.Header.Get("Content-Type"),
		SizeBytes:   file.Size,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AttachmentRepository().Create(ctx, &attachment); err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	s.logger.Info("Upload", "File stored", map[string]interface{}{
		"attachment_id": attachment.Id,
		"size_bytes":    attachment.SizeBytes,
	})

	return &dto.UploadResponse{
		Id:          attachment.Id,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		URL:         fmt.Sprintf("%s/uploads/%s", s.baseURL, storedName),
		CreatedAt:   attachment.CreatedAt,
	}, nil
}
