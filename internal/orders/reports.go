package orders

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"burntest/adapters/storage"
	"burntest/internal/errors"
	"burntest/models"

	"go.uber.org/zap"
)

// Reports lists the archived workbooks, newest first
func (s *Service) Reports(ctx context.Context) ([]models.Report, error) {
	objects, err := s.reports.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if !objects[i].CreatedAt.Equal(objects[j].CreatedAt) {
			return objects[i].CreatedAt.After(objects[j].CreatedAt)
		}
		return objects[i].Name > objects[j].Name
	})

	reports := []models.Report{}
	for _, obj := range objects {
		if !isReport(obj.Name) {
			continue
		}
		reports = append(reports, models.Report{
			Filename:    obj.Name,
			OrderNo:     strings.SplitN(obj.Name, "_", 2)[0],
			FileSize:    obj.Size,
			CreatedTime: obj.CreatedAt.Local().Format(createdLayout),
		})
	}
	return reports, nil
}

// DeleteReport removes one archived workbook
func (s *Service) DeleteReport(ctx context.Context, filename string) models.ActionResult {
	if err := s.deleteReport(ctx, filename); err != nil {
		s.logger.Warn("failed to delete report", zap.String("filename", filename), zap.Error(err))
		return models.Failure(msgReportDeleteFailed)
	}
	return models.Success(msgReportDeleted)
}

func (s *Service) deleteReport(ctx context.Context, filename string) error {
	if !isReport(filename) {
		return errors.InvalidInput("not a report file")
	}
	return s.reports.Delete(ctx, filename)
}

// ClearReports removes every archived workbook and counts the ones removed
func (s *Service) ClearReports(ctx context.Context) models.ClearReportsResult {
	reports, err := s.Reports(ctx)
	if err != nil {
		s.logger.Error("failed to clear reports", zap.Error(err))
		return models.ClearReportsResult{ActionResult: models.Failure(fmt.Sprintf(msgClearFailed, err.Error()))}
	}

	deleted := 0
	for _, r := range reports {
		if err := s.deleteReport(ctx, r.Filename); err != nil {
			s.logger.Warn("failed to delete report", zap.String("filename", r.Filename), zap.Error(err))
			continue
		}
		deleted++
	}
	s.logger.Info("reports cleared", zap.Int("deleted", deleted))
	return models.ClearReportsResult{
		ActionResult: models.Success(fmt.Sprintf(msgReportsCleared, deleted)),
		DeletedCount: deleted,
	}
}

// OpenReport returns the content of an archived workbook
func (s *Service) OpenReport(ctx context.Context, filename string) (io.ReadCloser, error) {
	if err := storage.ValidateName(filename); err != nil {
		return nil, err
	}
	return s.reports.Open(ctx, filename)
}

// UploadTemplate replaces the report template
func (s *Service) UploadTemplate(ctx context.Context, filename string, content io.Reader) models.ActionResult {
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return models.Failure(msgTemplateOnlyXLSX)
	}
	if err := replaceFile(s.templatePath(), content); err != nil {
		s.logger.Error("failed to store template", zap.Error(err))
		return models.Failure(fmt.Sprintf(msgTemplateUploadFail, err.Error()))
	}
	s.logger.Info("template updated", zap.String("filename", filename))
	return models.Success(msgTemplateUpdated)
}

// UploadLogo replaces the logo inserted into report sheets
func (s *Service) UploadLogo(ctx context.Context, filename string, content io.Reader) models.ActionResult {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return models.Failure(msgLogoOnlyImages)
	}
	if err := replaceFile(s.logoPath(), content); err != nil {
		s.logger.Error("failed to store logo", zap.Error(err))
		return models.Failure(fmt.Sprintf(msgLogoUploadFail, err.Error()))
	}
	s.logger.Info("logo updated", zap.String("filename", filename))
	return models.Success(msgLogoUpdated)
}

func isReport(name string) bool {
	return storage.ValidateName(name) == nil && strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// replaceFile writes content next to path and renames it into place
func replaceFile(path string, content io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
