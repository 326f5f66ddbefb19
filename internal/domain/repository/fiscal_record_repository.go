package repository

import (
	"context"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// FiscalRecordRepository define el puerto de persistencia del libro registro.
//
// El motor fiscal trabaja siempre sobre el snapshot completo de ListAll: la
// numeración y la agregación son proyecciones puras y no necesitan consultas
// parciales. La edición es sustitución completa por ID, nunca parche de
// campos; el motor jamás muta ni borra, solo lee.
type FiscalRecordRepository interface {
	ListAll(ctx context.Context) ([]entity.FiscalRecord, error)
	GetByID(ctx context.Context, id string) (*entity.FiscalRecord, error)
	Insert(ctx context.Context, record *entity.FiscalRecord) error
	Replace(ctx context.Context, id string, record *entity.FiscalRecord) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}
