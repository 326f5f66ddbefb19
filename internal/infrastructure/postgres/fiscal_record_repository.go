package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/autonomo-pro/internal/domain"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/internal/domain/repository"
)

var _ repository.FiscalRecordRepository = (*FiscalRecordRepo)(nil)

const fiscalRecordColumns = `
	id, kind, document_number, issue_date, registration_date,
	counterparty_tax_id, counterparty_name, counterparty_address,
	tax_base, vat_rate, vat_amount, withholding_rate, withholding_amount, total_amount,
	deductible, income_category, expense_irpf_category, expense_vat_category,
	created_at, updated_at`

// FiscalRecordRepo implementación del puerto FiscalRecordRepository sobre
// PostgreSQL (usable con pool o tx).
type FiscalRecordRepo struct {
	q Querier
}

// NewFiscalRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiscalRecordRepository(q Querier) *FiscalRecordRepo {
	return &FiscalRecordRepo{q: q}
}

// ListAll devuelve el libro completo. El motor de agregación trabaja siempre
// sobre este snapshot; el libro de un autónomo cabe en memoria sin paginar.
func (r *FiscalRecordRepo) ListAll(ctx context.Context) ([]entity.FiscalRecord, error) {
	query := `SELECT ` + fiscalRecordColumns + ` FROM fiscal_records ORDER BY issue_date, document_number`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fiscal_records: %w", err)
	}
	defer rows.Close()

	var list []entity.FiscalRecord
	for rows.Next() {
		rec, err := scanFiscalRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fiscal_record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// GetByID obtiene un apunte por ID. Devuelve nil sin error si no existe.
func (r *FiscalRecordRepo) GetByID(ctx context.Context, id string) (*entity.FiscalRecord, error) {
	query := `SELECT ` + fiscalRecordColumns + ` FROM fiscal_records WHERE id = $1`
	rec, err := scanFiscalRecord(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal_record: %w", err)
	}
	return &rec, nil
}

// Insert persiste un apunte nuevo.
func (r *FiscalRecordRepo) Insert(ctx context.Context, rec *entity.FiscalRecord) error {
	query := `
		INSERT INTO fiscal_records (` + fiscalRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query, fiscalRecordArgs(rec)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("insert fiscal_record: %w", err)
	}
	return nil
}

// Replace sustituye el apunte completo (la edición nunca es un parche de campos).
func (r *FiscalRecordRepo) Replace(ctx context.Context, id string, rec *entity.FiscalRecord) error {
	query := `
		UPDATE fiscal_records SET
			kind = $2, document_number = $3, issue_date = $4, registration_date = $5,
			counterparty_tax_id = $6, counterparty_name = $7, counterparty_address = $8,
			tax_base = $9, vat_rate = $10, vat_amount = $11,
			withholding_rate = $12, withholding_amount = $13, total_amount = $14,
			deductible = $15, income_category = $16,
			expense_irpf_category = $17, expense_vat_category = $18,
			updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		id, rec.Kind, rec.DocumentNumber, rec.IssueDate, rec.RegistrationDate,
		rec.CounterpartyTaxID, rec.CounterpartyName, rec.CounterpartyAddress,
		rec.TaxBase, rec.VATRate, rec.VATAmount,
		rec.WithholdingRate, rec.WithholdingAmount, rec.TotalAmount,
		rec.Deductible, rec.IncomeCategory,
		rec.ExpenseIRPFCategory, rec.ExpenseVATCategory,
		rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("replace fiscal_record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un apunte por ID.
func (r *FiscalRecordRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM fiscal_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fiscal_record: %w", err)
	}
	return nil
}

// DeleteMany elimina varios apuntes de una vez.
func (r *FiscalRecordRepo) DeleteMany(ctx context.Context, ids []string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM fiscal_records WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete fiscal_records: %w", err)
	}
	return nil
}

func fiscalRecordArgs(rec *entity.FiscalRecord) []any {
	return []any{
		rec.ID, rec.Kind, rec.DocumentNumber, rec.IssueDate, rec.RegistrationDate,
		rec.CounterpartyTaxID, rec.CounterpartyName, rec.CounterpartyAddress,
		rec.TaxBase, rec.VATRate, rec.VATAmount,
		rec.WithholdingRate, rec.WithholdingAmount, rec.TotalAmount,
		rec.Deductible, rec.IncomeCategory, rec.ExpenseIRPFCategory, rec.ExpenseVATCategory,
		rec.CreatedAt, rec.UpdatedAt,
	}
}

func scanFiscalRecord(row pgx.Row) (entity.FiscalRecord, error) {
	var rec entity.FiscalRecord
	err := row.Scan(
		&rec.ID, &rec.Kind, &rec.DocumentNumber, &rec.IssueDate, &rec.RegistrationDate,
		&rec.CounterpartyTaxID, &rec.CounterpartyName, &rec.CounterpartyAddress,
		&rec.TaxBase, &rec.VATRate, &rec.VATAmount,
		&rec.WithholdingRate, &rec.WithholdingAmount, &rec.TotalAmount,
		&rec.Deductible, &rec.IncomeCategory, &rec.ExpenseIRPFCategory, &rec.ExpenseVATCategory,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return entity.FiscalRecord{}, err
	}
	return rec, nil
}
