package transfer

import (
	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/sirupsen/logrus"
)

// Service handles bulk catalog import and export. It speaks the flat
// spreadsheet layout on the outside and catalog entities on the
// inside; the storage swap itself happens in the catalog service so
// it stays transactional.
type Service struct {
	catalog *catalog.Service
	log     *logrus.Logger
}

func NewService(catalogService *catalog.Service, log *logrus.Logger) *Service {
	return &Service{catalog: catalogService, log: log}
}
