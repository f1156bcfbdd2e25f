package domain

import "errors"

var (
	ErrSessionNotFound       = errors.New("simulation session not found")
	ErrSessionLimit          = errors.New("simulation session limit reached")
	ErrEngineClosed          = errors.New("simulation engine is closed")
	ErrInvalidClassification = errors.New("invalid report classification")
	ErrInvalidFilter         = errors.New("invalid report filter")
	ErrReportNotFound        = errors.New("simulation report not found")
	ErrArchiveDisabled       = errors.New("report archive is not configured")
	ErrReportConflict        = errors.New("report id belongs to another session")
)
