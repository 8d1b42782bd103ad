package service

import (
	"context"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/adilzhm/textbook-service/internal/repository"
	"go.uber.org/zap"
)

type RequestService struct {
	log  *zap.Logger
	repo repository.Request
}

func NewRequestService(repo repository.Request, log *zap.Logger) *RequestService {
	return &RequestService{
		log:  log,
		repo: repo,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.BookRequest, error) {
	return s.repo.CreateRequest(ctx, req)
}

func (s *RequestService) ListByStudent(ctx context.Context, username string) ([]model.StudentRequest, error) {
	return s.repo.ListByStudent(ctx, username)
}

func (s *RequestService) ListPending(ctx context.Context) ([]model.StudentRequest, error) {
	return s.repo.ListPending(ctx)
}

func (s *RequestService) ProcessRequest(ctx context.Context, requestID int, status model.Status) (model.BookRequest, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return model.BookRequest{}, errs.ErrInvalidArgument
	}
	return s.repo.ProcessRequest(ctx, requestID, status)
}

func (s *RequestService) DeleteByStudent(ctx context.Context, username string) error {
	return s.repo.DeleteByStudent(ctx, username)
}

func (s *RequestService) DeleteAllPending(ctx context.Context) error {
	return s.repo.DeleteAllPending(ctx)
}
