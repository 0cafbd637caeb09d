package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "request-tools-backend/lib/file-storage"
	s3client "request-tools-backend/s3"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("ошибка инициализации клиента S3")
		return
	}
	filestorage.NewInstance(minioClient)
	if err = filestorage.Instance.EnsureBucket(ctx); err != nil {
		log.WithError(err).Error("ошибка создания бакета для вложений")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
