package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/treediff/domain"
)

// DiffUseCase orchestrates a single diff: validate, run, format.
type DiffUseCase struct {
	service   domain.DiffService
	formatter domain.DiffOutputFormatter
}

// NewDiffUseCase creates a new diff use case with the given dependencies
func NewDiffUseCase(service domain.DiffService, formatter domain.DiffOutputFormatter) *DiffUseCase {
	return &DiffUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute runs the diff described by the request and writes the result
func (uc *DiffUseCase) Execute(ctx context.Context, req domain.DiffRequest) (*domain.DiffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.OutputWriter == nil {
		return nil, fmt.Errorf("no output writer specified")
	}

	response, err := uc.service.Diff(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("diff failed: %w", err)
	}

	if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return response, nil
}

// DirDiffUseCase orchestrates a directory diff
type DirDiffUseCase struct {
	service   domain.DirDiffService
	formatter domain.DiffOutputFormatter
}

// NewDirDiffUseCase creates a new directory diff use case
func NewDirDiffUseCase(service domain.DirDiffService, formatter domain.DiffOutputFormatter) *DirDiffUseCase {
	return &DirDiffUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute runs the directory diff and writes the result
func (uc *DirDiffUseCase) Execute(ctx context.Context, req domain.DirDiffRequest) (*domain.DirDiffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.OutputWriter == nil {
		return nil, fmt.Errorf("no output writer specified")
	}

	response, err := uc.service.DiffDirs(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("directory diff failed: %w", err)
	}

	if err := uc.formatter.WriteDir(response, req.OutputFormat, req.OutputWriter); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return response, nil
}
