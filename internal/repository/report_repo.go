package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

const selectReport = `
	SELECT id, name, report_date, type, report_type, date_range, generated_by, filename, file_content, preview_data, created_at
	FROM reports`

// CreateReport inserts a generated report
func CreateReport(ctx context.Context, row *model.ReportRow) error {
	fillIdentity(&row.ID, &row.CreatedAt)

	_, err := exec(ctx, `
		INSERT INTO reports (id, name, report_date, type, report_type, date_range, generated_by, filename, file_content, preview_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Name, row.ReportDate, row.Type, row.ReportType, row.DateRange,
		row.GeneratedBy, row.Filename, row.FileContent, row.PreviewData, row.CreatedAt)
	return err
}

// ListReports returns all reports, newest first
func ListReports(ctx context.Context) ([]model.ReportRow, error) {
	rows, err := query(ctx, selectReport+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.ReportRow{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return reports, rows.Err()
}

// GetReportByID returns a report by ID, or nil when absent
func GetReportByID(ctx context.Context, reportID string) (*model.ReportRow, error) {
	rows, err := query(ctx, selectReport+` WHERE id = ?`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanReport(rows)
}

// DeleteReport deletes a report
func DeleteReport(ctx context.Context, reportID string) (bool, error) {
	result, err := exec(ctx, `DELETE FROM reports WHERE id = ?`, reportID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(s scanner) (*model.ReportRow, error) {
	report := &model.ReportRow{}
	err := s.Scan(
		&report.ID, &report.Name, &report.ReportDate, &report.Type, &report.ReportType,
		&report.DateRange, &report.GeneratedBy, &report.Filename, &report.FileContent,
		&report.PreviewData, &report.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}
