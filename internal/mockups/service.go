package mockups

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	placeholderNote = "Mockup generado con servicio placeholder (prototipo). Para mockups con la imagen real del soporte, configurar Cloudinary."
	cloudinaryNote  = "Mockup generado con overlay de texto sobre la imagen base del soporte."
	unknownType     = "unknown"
)

// InventoryReader resolves support types for batch generation.
type InventoryReader interface {
	FindByCode(ctx context.Context, code string) (*models.InventoryItem, error)
}

type ServiceParams struct {
	Builder   *Builder
	Inventory InventoryReader
}

type Mockup struct {
	Success   bool   `json:"success"`
	MockupURL string `json:"mockupUrl"`
	Method    Method `json:"method"`
	Note      string `json:"note"`
}

type BatchEntry struct {
	Code      string `json:"code"`
	MockupURL string `json:"mockupUrl"`
	Type      string `json:"type"`
}

type Batch struct {
	Success    bool         `json:"success"`
	ClientName string       `json:"clientName"`
	Mockups    []BatchEntry `json:"mockups"`
	Method     Method       `json:"method"`
	Count      int          `json:"count"`
}

type Service interface {
	GenerateMockupURL(clientName, inventoryCode, inventoryType string) (Mockup, error)
	GenerateBatch(ctx context.Context, clientName string, codes []string) (Batch, error)
}

type service struct {
	builder   *Builder
	inventory InventoryReader
}

func NewService(params ServiceParams) (Service, error) {
	if params.Builder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mockup builder is required")
	}
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory reader is required")
	}
	return &service{builder: params.Builder, inventory: params.Inventory}, nil
}

func (s *service) GenerateMockupURL(clientName, inventoryCode, inventoryType string) (Mockup, error) {
	clientName = strings.TrimSpace(clientName)
	inventoryCode = strings.TrimSpace(inventoryCode)
	if clientName == "" || inventoryCode == "" {
		return Mockup{}, pkgerrors.New(pkgerrors.CodeValidation, "cliente y código son obligatorios")
	}

	url, method := s.builder.URL(clientName, inventoryCode, inventoryType)
	note := placeholderNote
	if method == MethodCloudinary {
		note = cloudinaryNote
	}
	return Mockup{Success: true, MockupURL: url, Method: method, Note: note}, nil
}

// GenerateBatch builds one mockup per code. Unknown codes still get a mockup
// with a generic support type.
func (s *service) GenerateBatch(ctx context.Context, clientName string, codes []string) (Batch, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return Batch{}, pkgerrors.New(pkgerrors.CodeValidation, "el cliente es obligatorio")
	}

	method := MethodPlaceholder
	entries := make([]BatchEntry, 0, len(codes))
	for _, code := range codes {
		supportType := ""
		item, err := s.inventory.FindByCode(ctx, code)
		switch {
		case err == nil:
			supportType = string(item.Type)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return Batch{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory by code")
		}

		url, used := s.builder.URL(clientName, code, supportType)
		method = used
		entry := BatchEntry{Code: code, MockupURL: url, Type: supportType}
		if entry.Type == "" {
			entry.Type = unknownType
		}
		entries = append(entries, entry)
	}

	return Batch{
		Success:    true,
		ClientName: clientName,
		Mockups:    entries,
		Method:     method,
		Count:      len(entries),
	}, nil
}
