package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrFileNotFound  = errors.New("generated file not found")
	ErrEmptyFileName = errors.New("file name cannot be empty")
)

// GeneratedFile is the metadata recorded for every exported document.
type GeneratedFile struct {
	ID         uuid.UUID       `json:"id"`
	TemplateID string          `json:"templateId"`
	FileName   string          `json:"fileName"`
	FilePath   string          `json:"filePath"`
	Format     string          `json:"format"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFileName
	}
	return name, nil
}
