// Package aeat contiene el motor de cálculo fiscal del libro registro:
// numeración de documentos, agregación a los modelos 303/390/130/111/347/190
// y comprobaciones de integridad previas al guardado.
//
// Todo el paquete opera sobre un snapshot inmutable de apuntes que aporta el
// llamador: funciones puras, sin estado compartido ni E/S.
package aeat

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// Prefijos de serie por tipo de documento. El patrón completo de numeración
// es "{A|R}-{yy}-{n}" (ej: A-25-1, R-25-14) y es contrato externo exacto:
// cualquier consumidor que parsee números históricos debe usarlo anclado.
const (
	PrefixIncome  = "A" // facturas emitidas
	PrefixExpense = "R" // facturas recibidas
)

// SeriesPrefix devuelve el prefijo de serie para un tipo de apunte.
func SeriesPrefix(kind entity.RecordKind) string {
	if kind == entity.KindExpense {
		return PrefixExpense
	}
	return PrefixIncome
}

// NextNumber calcula el siguiente número de documento libre para el tipo y
// año indicados: filtra los apuntes del tipo cuyo número encaja exactamente
// con el patrón del año (regex anclado, nunca por prefijo suelto), toma el
// máximo n y devuelve n+1 formateado.
//
// Proyección pura sobre el snapshot: idempotente, no reserva contador alguno
// y puede invocarse en cada pulsación mientras el usuario teclea. Un año
// nuevo arranca en 1 automáticamente la primera vez que se consulta; no
// existe (ni se permite) operación de "cierre de ejercicio".
//
// Si el usuario teclea un número ya existente es responsabilidad del
// llamador distinguir alta de edición consultando el libro; NextNumber no
// desambigua intenciones.
func NextNumber(existing []entity.FiscalRecord, kind entity.RecordKind, year int) string {
	prefix := SeriesPrefix(kind)
	yy := year % 100

	// n positivo sin anchura fija ni ceros a la izquierda.
	re := regexp.MustCompile(fmt.Sprintf(`^%s-%02d-([1-9]\d*)$`, prefix, yy))

	max := 0
	for i := range existing {
		r := &existing[i]
		if r.Kind != kind {
			continue
		}
		m := re.FindStringSubmatch(r.DocumentNumber)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return FormatNumber(kind, year, max+1)
}

// FormatNumber formatea un número de documento en el patrón de serie.
func FormatNumber(kind entity.RecordKind, year, n int) string {
	return fmt.Sprintf("%s-%02d-%d", SeriesPrefix(kind), year%100, n)
}
