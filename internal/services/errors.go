package services

import "errors"

// Report service errors
var (
	// Workbook errors
	ErrWorkbookNotFound = errors.New("workbook not found")

	// Chart errors
	ErrTruckNotFound = errors.New("truck not found in summary")
)
