package service

import (
	"context"

	"shopcat/internal/dto"
	"shopcat/internal/worker"
)

// ExportService enqueues async catalog exports. The heavy lifting (tree
// build, PDF render, email delivery) happens in the worker pool.
type ExportService interface {
	Enqueue(ctx context.Context, requestedBy string, req dto.ExportCatalogRequest) (*dto.ExportCatalogResponse, error)
}

type exportService struct {
	dispatcher *worker.Dispatcher
}

func NewExportService(dispatcher *worker.Dispatcher) ExportService {
	return &exportService{dispatcher: dispatcher}
}

func (s *exportService) Enqueue(ctx context.Context, requestedBy string, req dto.ExportCatalogRequest) (*dto.ExportCatalogResponse, error) {
	payload := worker.ExportJobPayload{
		RequestedBy: requestedBy,
		Email:       req.Email,
	}
	if err := s.dispatcher.EnqueueExport(ctx, payload); err != nil {
		return nil, err
	}
	return &dto.ExportCatalogResponse{Queued: true}, nil
}
