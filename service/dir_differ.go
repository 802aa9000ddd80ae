package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/constants"
)

// DirDifferImpl implements the DirDiffService interface. It pairs files
// of two directory trees by relative path and diffs each pair.
type DirDifferImpl struct {
	diffService domain.DiffService
	fileReader  *FileReaderImpl
	progress    domain.ProgressManager
}

// NewDirDiffer creates a new directory differ.
// progress may be nil, in which case no progress is reported.
func NewDirDiffer(diffService domain.DiffService, progress domain.ProgressManager) *DirDifferImpl {
	return &DirDifferImpl{
		diffService: diffService,
		fileReader:  NewFileReader(),
		progress:    progress,
	}
}

// DiffDirs diffs matching files of two directory trees
func (d *DirDifferImpl) DiffDirs(ctx context.Context, req *domain.DirDiffRequest) (*domain.DirDiffResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("directory diff request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	include := req.IncludePatterns
	if len(include) == 0 {
		include = constants.DefaultIncludePatterns
	}
	exclude := req.ExcludePatterns
	if len(exclude) == 0 {
		exclude = constants.DefaultExcludePatterns
	}

	leftFiles, err := d.fileReader.CollectRelative(req.LeftDir, include, exclude)
	if err != nil {
		return nil, err
	}
	rightFiles, err := d.fileReader.CollectRelative(req.RightDir, include, exclude)
	if err != nil {
		return nil, err
	}

	all := unionSorted(leftFiles, rightFiles)
	inLeft := toSet(leftFiles)
	inRight := toSet(rightFiles)

	if d.progress != nil {
		d.progress.Initialize(len(all))
		d.progress.Start()
		defer d.progress.Close()
	}

	response := &domain.DirDiffResponse{}
	for i, rel := range all {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("directory diff cancelled: %w", ctx.Err())
		default:
		}

		response.Files = append(response.Files, d.diffOne(ctx, req, rel, inLeft[rel], inRight[rel], response))

		if d.progress != nil {
			d.progress.Update(i+1, len(all))
		}
	}

	if d.progress != nil {
		d.progress.Complete(true)
	}

	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

func (d *DirDifferImpl) diffOne(ctx context.Context, req *domain.DirDiffRequest, rel string, left, right bool, response *domain.DirDiffResponse) domain.FileDiff {
	switch {
	case left && !right:
		response.Removed++
		return domain.FileDiff{RelPath: rel, Status: "removed"}
	case right && !left:
		response.Added++
		return domain.FileDiff{RelPath: rel, Status: "added"}
	}

	fileReq := &domain.DiffRequest{
		LeftPath:     filepath.Join(req.LeftDir, filepath.FromSlash(rel)),
		RightPath:    filepath.Join(req.RightDir, filepath.FromSlash(rel)),
		InputKind:    req.InputKind,
		MinHeight:    req.MinHeight,
		MinDice:      req.MinDice,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: io.Discard,
	}

	fileResp, err := d.diffService.Diff(ctx, fileReq)
	if err != nil {
		return domain.FileDiff{RelPath: rel, Status: "error", Error: err.Error()}
	}

	if fileResp.Summary.Identical() {
		return domain.FileDiff{RelPath: rel, Status: "identical"}
	}

	response.Changed++
	summary := fileResp.Summary
	return domain.FileDiff{RelPath: rel, Status: "changed", Summary: &summary}
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
