package aeat

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/autonomo-pro/internal/domain/entity"
)

// Umbral legal del modelo 347: solo se declaran contrapartes cuyo volumen
// anual lo SUPERA. Una contraparte en exactamente 3005,06 queda fuera.
var threshold347 = decimal.New(300506, -2)

// Tipo del pago fraccionado del modelo 130 (20 % del rendimiento neto).
var quotaRate130 = decimal.New(2, -1)

// El agregador suma los importes almacenados tal cual (decimal exacto, sin
// redondeo alguno): el redondeo a céntimos es asunto de la capa de
// presentación, de modo que agregar dos veces el mismo libro dé siempre el
// mismo resultado. Un apunte con importes en valor cero (p. ej. mal
// importado) suma cero y no aborta el ejercicio completo.

// filterPeriod devuelve los apuntes del año y, si quarter es 1..4, de la
// ventana de tres meses del trimestre. La fecha de expedición manda.
func filterPeriod(records []entity.FiscalRecord, year, quarter int) []entity.FiscalRecord {
	out := make([]entity.FiscalRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.IssueDate.Year() != year {
			continue
		}
		if quarter >= 1 && quarter <= 4 && r.Quarter() != quarter {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// Modelo303Quarter liquidación de IVA del trimestre indicado.
func Modelo303Quarter(records []entity.FiscalRecord, year, quarter int) Modelo303 {
	m := Modelo303{Year: year, Quarter: quarter}
	for _, r := range filterPeriod(records, year, quarter) {
		switch {
		case r.Kind == entity.KindIncome:
			m.OutputVAT = m.OutputVAT.Add(r.VATAmount)
		case r.IsDeductibleExpense():
			m.InputVAT = m.InputVAT.Add(r.VATAmount)
		}
	}
	m.Result = m.OutputVAT.Sub(m.InputVAT)
	return m
}

// Modelo303Annual acumulado anual de IVA: suma exacta de los cuatro
// trimestres, nunca un recálculo independiente, para que el anual cuadre
// siempre con los trimestrales mostrados.
func Modelo303Annual(records []entity.FiscalRecord, year int) Modelo303 {
	annual := Modelo303{Year: year}
	for q := 1; q <= 4; q++ {
		m := Modelo303Quarter(records, year, q)
		annual.OutputVAT = annual.OutputVAT.Add(m.OutputVAT)
		annual.InputVAT = annual.InputVAT.Add(m.InputVAT)
		annual.Result = annual.Result.Add(m.Result)
	}
	return annual
}

// Modelo390Annual resumen anual de IVA con desglose del soportado deducible
// por tipo impositivo (tipo descendente). Los totales son los del 303 anual.
func Modelo390Annual(records []entity.FiscalRecord, year int) Modelo390 {
	annual := Modelo303Annual(records, year)
	m := Modelo390{
		Year:      year,
		OutputVAT: annual.OutputVAT,
		InputVAT:  annual.InputVAT,
		Result:    annual.Result,
	}

	type acc struct {
		rate      decimal.Decimal
		taxBase   decimal.Decimal
		vatAmount decimal.Decimal
	}
	byRate := make(map[string]*acc)
	for _, r := range filterPeriod(records, year, 0) {
		if !r.IsDeductibleExpense() {
			continue
		}
		key := r.VATRate.String()
		a, ok := byRate[key]
		if !ok {
			a = &acc{rate: r.VATRate}
			byRate[key] = a
		}
		a.taxBase = a.taxBase.Add(r.TaxBase)
		a.vatAmount = a.vatAmount.Add(r.VATAmount)
	}

	m.Breakdown = make([]VATRateBreakdown, 0, len(byRate))
	for _, a := range byRate {
		m.Breakdown = append(m.Breakdown, VATRateBreakdown{
			Rate:      a.rate,
			TaxBase:   a.taxBase,
			VATAmount: a.vatAmount,
		})
	}
	sort.Slice(m.Breakdown, func(i, j int) bool {
		return m.Breakdown[i].Rate.GreaterThan(m.Breakdown[j].Rate)
	})
	return m
}

// Modelo130Quarter pago fraccionado de IRPF del trimestre.
func Modelo130Quarter(records []entity.FiscalRecord, year, quarter int) Modelo130 {
	m := Modelo130{Year: year, Quarter: quarter}
	for _, r := range filterPeriod(records, year, quarter) {
		switch {
		case r.Kind == entity.KindIncome:
			m.Income = m.Income.Add(r.TaxBase)
			m.WithholdingSuffered = m.WithholdingSuffered.Add(r.WithholdingAmount)
		case r.IsDeductibleExpense():
			m.DeductibleExpenses = m.DeductibleExpenses.Add(r.TaxBase)
		}
	}
	m.NetYield = m.Income.Sub(m.DeductibleExpenses)
	quotaBase := m.NetYield
	if quotaBase.IsNegative() {
		quotaBase = decimal.Zero
	}
	m.TheoreticalQuota = quotaBase.Mul(quotaRate130)
	m.Result = m.TheoreticalQuota.Sub(m.WithholdingSuffered)
	return m
}

// Modelo130Annual acumulado anual: suma de los cuatro trimestres, incluida
// la cuota teórica ya recortada a cero trimestre a trimestre.
func Modelo130Annual(records []entity.FiscalRecord, year int) Modelo130 {
	annual := Modelo130{Year: year}
	for q := 1; q <= 4; q++ {
		m := Modelo130Quarter(records, year, q)
		annual.Income = annual.Income.Add(m.Income)
		annual.DeductibleExpenses = annual.DeductibleExpenses.Add(m.DeductibleExpenses)
		annual.NetYield = annual.NetYield.Add(m.NetYield)
		annual.TheoreticalQuota = annual.TheoreticalQuota.Add(m.TheoreticalQuota)
		annual.WithholdingSuffered = annual.WithholdingSuffered.Add(m.WithholdingSuffered)
		annual.Result = annual.Result.Add(m.Result)
	}
	return annual
}

// Modelo111Quarter retenciones practicadas en gastos deducibles del trimestre.
func Modelo111Quarter(records []entity.FiscalRecord, year, quarter int) Modelo111 {
	m := Modelo111{Year: year, Quarter: quarter}
	for _, r := range filterPeriod(records, year, quarter) {
		if r.IsDeductibleExpense() {
			m.Withheld = m.Withheld.Add(r.WithholdingAmount)
		}
	}
	return m
}

// Modelo111Annual acumulado anual: suma de trimestres.
func Modelo111Annual(records []entity.FiscalRecord, year int) Modelo111 {
	annual := Modelo111{Year: year}
	for q := 1; q <= 4; q++ {
		annual.Withheld = annual.Withheld.Add(Modelo111Quarter(records, year, q).Withheld)
	}
	return annual
}

// Modelo347Annual operaciones con terceros: agrupa TODOS los apuntes del año
// (ambos tipos) por NIF de contraparte y declara los grupos cuyo volumen
// Σ|total| supera estrictamente el umbral. El tipo dominante del grupo es el
// de mayor volumen absoluto (empate: INCOME).
func Modelo347Annual(records []entity.FiscalRecord, year int) Modelo347 {
	type acc struct {
		name    string
		total   decimal.Decimal
		income  decimal.Decimal
		expense decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, r := range filterPeriod(records, year, 0) {
		a, ok := groups[r.CounterpartyTaxID]
		if !ok {
			a = &acc{name: r.CounterpartyName}
			groups[r.CounterpartyTaxID] = a
		}
		abs := r.TotalAmount.Abs()
		a.total = a.total.Add(abs)
		if r.Kind == entity.KindIncome {
			a.income = a.income.Add(abs)
		} else {
			a.expense = a.expense.Add(abs)
		}
	}

	m := Modelo347{Year: year}
	for taxID, a := range groups {
		if !a.total.GreaterThan(threshold347) {
			continue // umbral estricto: en 3005,06 exactos no se declara
		}
		kind := entity.KindIncome
		if a.expense.GreaterThan(a.income) {
			kind = entity.KindExpense
		}
		m.Operations = append(m.Operations, Operation347{
			TaxID: taxID,
			Name:  a.name,
			Total: a.total,
			Kind:  kind,
		})
	}
	sortOps347(m.Operations)
	return m
}

// Orden estable para la declaración: volumen descendente y NIF como desempate.
func sortOps347(ops []Operation347) {
	sort.Slice(ops, func(i, j int) bool {
		if !ops[i].Total.Equal(ops[j].Total) {
			return ops[i].Total.GreaterThan(ops[j].Total)
		}
		return ops[i].TaxID < ops[j].TaxID
	})
}

// Modelo190Annual retenciones soportadas: agrupa los INCOME con retención
// positiva por cliente y suma base y retención.
func Modelo190Annual(records []entity.FiscalRecord, year int) Modelo190 {
	type acc struct {
		name     string
		taxBase  decimal.Decimal
		withheld decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, r := range filterPeriod(records, year, 0) {
		if r.Kind != entity.KindIncome || !r.WithholdingAmount.IsPositive() {
			continue
		}
		a, ok := groups[r.CounterpartyTaxID]
		if !ok {
			a = &acc{name: r.CounterpartyName}
			groups[r.CounterpartyTaxID] = a
		}
		a.taxBase = a.taxBase.Add(r.TaxBase)
		a.withheld = a.withheld.Add(r.WithholdingAmount)
	}

	m := Modelo190{Year: year}
	for taxID, a := range groups {
		m.Recipients = append(m.Recipients, Recipient190{
			TaxID:    taxID,
			Name:     a.name,
			TaxBase:  a.taxBase,
			Withheld: a.withheld,
		})
	}
	sort.Slice(m.Recipients, func(i, j int) bool {
		if !m.Recipients[i].Withheld.Equal(m.Recipients[j].Withheld) {
			return m.Recipients[i].Withheld.GreaterThan(m.Recipients[j].Withheld)
		}
		return m.Recipients[i].TaxID < m.Recipients[j].TaxID
	})
	return m
}

// Aggregate calcula el resumen fiscal completo del ejercicio: los seis
// modelos con granularidad trimestral y anual. Total sobre cualquier libro,
// incluido el vacío (resumen con importes a cero, nunca error).
func Aggregate(records []entity.FiscalRecord, year int) FiscalSummary {
	s := FiscalSummary{Year: year}
	for q := 1; q <= 4; q++ {
		s.M303Quarters[q-1] = Modelo303Quarter(records, year, q)
		s.M130Quarters[q-1] = Modelo130Quarter(records, year, q)
		s.M111Quarters[q-1] = Modelo111Quarter(records, year, q)
	}
	s.M303Annual = Modelo303Annual(records, year)
	s.M130Annual = Modelo130Annual(records, year)
	s.M111Annual = Modelo111Annual(records, year)
	s.M390 = Modelo390Annual(records, year)
	s.M347 = Modelo347Annual(records, year)
	s.M190 = Modelo190Annual(records, year)
	return s
}
