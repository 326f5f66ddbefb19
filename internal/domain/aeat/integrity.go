package aeat

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
	"github.com/tu-usuario/autonomo-pro/pkg/aeat"
)

// Códigos de incidencia devueltos por CheckBeforeSave.
const (
	IssueDuplicateNumber    = "DUPLICATE_DOCUMENT_NUMBER"
	IssueMissingField       = "MISSING_REQUIRED_FIELD"
	IssueInvalidChecksum    = "TAX_ID_INVALID_CHECKSUM"
	IssueUnrecognizedTaxID  = "TAX_ID_UNRECOGNIZED_FORMAT"
)

// Issue incidencia detectada en un borrador de apunte.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResult clasifica las incidencias: las bloqueantes impiden guardar;
// las de aviso permiten guardar con confirmación explícita del usuario y
// deben seguir visibles hasta corregirse.
type CheckResult struct {
	Blocking []Issue `json:"blocking"`
	Advisory []Issue `json:"advisory"`
}

// OK indica que no hay incidencia bloqueante.
func (r CheckResult) OK() bool { return len(r.Blocking) == 0 }

// Clean indica que no hay incidencia de ningún tipo.
func (r CheckResult) Clean() bool { return len(r.Blocking) == 0 && len(r.Advisory) == 0 }

// CheckBeforeSave ejecuta las comprobaciones de integridad previas a un alta
// o edición. Nunca muta estado: clasifica y devuelve; la decisión de seguir
// adelante pese a los avisos es del llamador.
//
// Reglas:
//  1. Unicidad de (tipo, número) en todo el libro. En alta cualquier
//     coincidencia bloquea; en edición bloquea la coincidencia con un apunte
//     de ID distinto (el que se está sustituyendo queda excluido).
//  2. Validación del NIF de la contraparte: bloqueante en INCOME (clientes),
//     solo aviso en EXPENSE para tolerar NIF-IVA intracomunitarios y
//     proveedores extranjeros.
//  3. Presencia de campos obligatorios: nombre y NIF de contraparte, número
//     de documento y fecha de expedición.
func CheckBeforeSave(draft *entity.FiscalRecord, existing []entity.FiscalRecord, isEdit bool) CheckResult {
	var res CheckResult

	// Campos obligatorios.
	if strings.TrimSpace(draft.CounterpartyName) == "" {
		res.Blocking = append(res.Blocking, Issue{
			Field: "counterpartyName", Code: IssueMissingField,
			Message: "el nombre de la contraparte es obligatorio",
		})
	}
	if strings.TrimSpace(draft.CounterpartyTaxID) == "" {
		res.Blocking = append(res.Blocking, Issue{
			Field: "counterpartyTaxId", Code: IssueMissingField,
			Message: "el NIF de la contraparte es obligatorio",
		})
	}
	if strings.TrimSpace(draft.DocumentNumber) == "" {
		res.Blocking = append(res.Blocking, Issue{
			Field: "documentNumber", Code: IssueMissingField,
			Message: "el número de documento es obligatorio",
		})
	}
	if draft.IssueDate.IsZero() {
		res.Blocking = append(res.Blocking, Issue{
			Field: "issueDate", Code: IssueMissingField,
			Message: "la fecha de expedición es obligatoria",
		})
	}

	// Unicidad de (tipo, número) en todo el libro, también entre contrapartes distintas.
	if strings.TrimSpace(draft.DocumentNumber) != "" {
		for i := range existing {
			e := &existing[i]
			if e.Kind != draft.Kind || e.DocumentNumber != draft.DocumentNumber {
				continue
			}
			if isEdit && e.ID == draft.ID {
				continue // el apunte que se sustituye no colisiona consigo mismo
			}
			res.Blocking = append(res.Blocking, Issue{
				Field: "documentNumber", Code: IssueDuplicateNumber,
				Message: fmt.Sprintf("ya existe el documento %s para ese tipo", draft.DocumentNumber),
			})
			break
		}
	}

	// Política de NIF por tipo (§ validador): estricta en ingresos, aviso en gastos.
	if strings.TrimSpace(draft.CounterpartyTaxID) != "" {
		res = appendTaxIDIssues(res, draft)
	}

	return res
}

func appendTaxIDIssues(res CheckResult, draft *entity.FiscalRecord) CheckResult {
	v := aeat.Validate(draft.CounterpartyTaxID)
	if v.Valid() {
		return res
	}

	var issue Issue
	switch v.Status {
	case aeat.StatusInvalidChecksum:
		issue = Issue{
			Field: "counterpartyTaxId", Code: IssueInvalidChecksum,
			Message: fmt.Sprintf("letra de control incorrecta, se esperaba %c", v.ExpectedLetter),
		}
	default:
		issue = Issue{
			Field: "counterpartyTaxId", Code: IssueUnrecognizedTaxID,
			Message: "formato de identificador no reconocido",
		}
	}

	if draft.Kind == entity.KindIncome {
		res.Blocking = append(res.Blocking, issue)
	} else {
		res.Advisory = append(res.Advisory, issue)
	}
	return res
}
