// seed_demo genera un script SQL con datos de demostración: el perfil del
// profesional y un ejercicio completo de apuntes (facturas emitidas con IVA y
// retención, gastos deducibles con categorías del 130).
//
// Uso: go run ./cmd/seed_demo [ejercicio]
// Por defecto usa el año en curso.
// Escribe: migrations/900_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type demoRecord struct {
	kind            string
	number          string
	issueDate       string // MM-DD, el año se antepone
	counterpartyID  string
	counterparty    string
	taxBase         string
	vatRate         string
	vatAmount       string
	withholdingRate string
	withholding     string
	total           string
	deductible      bool
	category        string // expense_irpf_category o income_category según kind
}

// Importes coherentes entre sí: total = base + cuota - retención. Los
// números siguen la serie nativa {A|R}-{yy}-{n} para que el siguiente
// número proyectado continúe donde acaba la demo.
var demoRecords = []demoRecord{
	{"INCOME", "A-%02d-1", "01-15", "B12345674", "Estudio Creativo SL", "1500.00", "21.00", "315.00", "15.00", "225.00", "1590.00", false, "servicios"},
	{"INCOME", "A-%02d-2", "02-20", "B12345674", "Estudio Creativo SL", "2000.00", "21.00", "420.00", "15.00", "300.00", "2120.00", false, "servicios"},
	{"INCOME", "A-%02d-3", "04-10", "87654321X", "Laura Fernández", "800.00", "21.00", "168.00", "0.00", "0.00", "968.00", false, "servicios"},
	{"INCOME", "A-%02d-4", "07-05", "B12345674", "Estudio Creativo SL", "1200.00", "21.00", "252.00", "15.00", "180.00", "1272.00", false, "servicios"},
	{"INCOME", "A-%02d-5", "10-18", "X1234567L", "Jean Dupont", "950.00", "21.00", "199.50", "0.00", "0.00", "1149.50", false, "servicios"},
	{"EXPENSE", "R-%02d-1", "01-08", "A82018474", "Telefónica de España", "45.00", "21.00", "9.45", "0.00", "0.00", "54.45", true, "suministros"},
	{"EXPENSE", "R-%02d-2", "02-15", "B12345674", "Coworking Centro SL", "250.00", "21.00", "52.50", "0.00", "0.00", "302.50", true, "alquiler"},
	{"EXPENSE", "R-%02d-3", "03-22", "87654321X", "Papelería Sol", "60.00", "21.00", "12.60", "0.00", "0.00", "72.60", true, "material"},
	{"EXPENSE", "R-%02d-4", "05-30", "B12345674", "Asesoría Gómez SL", "120.00", "21.00", "25.20", "15.00", "18.00", "127.20", true, "servicios_profesionales"},
	{"EXPENSE", "R-%02d-5", "09-12", "X1234567L", "Librería Técnica", "35.00", "4.00", "1.40", "0.00", "0.00", "36.40", true, "formacion"},
	{"EXPENSE", "R-%02d-6", "11-03", "A82018474", "Telefónica de España", "45.00", "21.00", "9.45", "0.00", "0.00", "54.45", true, "suministros"},
}

func main() {
	year := time.Now().Year()
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 2000 {
			fmt.Fprintf(os.Stderr, "Ejercicio inválido: %s\n", os.Args[1])
			os.Exit(1)
		}
		year = n
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "900_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Datos de demostración para el ejercicio %d\n", year)
	out.WriteString("-- Generado con cmd/seed_demo\n\n")

	out.WriteString("-- 1. Perfil del profesional\n")
	out.WriteString("INSERT INTO professional (singleton, id, tax_id, name, address, postal_code, city, province, iae_heading, email, phone)\n")
	out.WriteString("VALUES (TRUE, gen_random_uuid(), '12345678Z', 'María García López', 'Calle Mayor 1, 3ºB', '28013', 'Madrid', 'Madrid', '763', 'maria@example.com', '600123456')\n")
	out.WriteString("ON CONFLICT (singleton) DO NOTHING;\n\n")

	out.WriteString("-- 2. Libro registro\n")
	for _, r := range demoRecords {
		number := fmt.Sprintf(r.number, year%100)
		issueDate := fmt.Sprintf("%d-%s", year, r.issueDate)
		categoryCol := "income_category"
		if r.kind == "EXPENSE" {
			categoryCol = "expense_irpf_category"
		}
		fmt.Fprintf(out, "INSERT INTO fiscal_records (id, kind, document_number, issue_date, counterparty_tax_id, counterparty_name, tax_base, vat_rate, vat_amount, withholding_rate, withholding_amount, total_amount, deductible, %s)\n", categoryCol)
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %s, %s, %s, %t, '%s')\n",
			r.kind, escapeSQL(number), issueDate, r.counterpartyID, escapeSQL(r.counterparty),
			r.taxBase, r.vatRate, r.vatAmount, r.withholdingRate, r.withholding, r.total,
			r.deductible, escapeSQL(r.category))
		out.WriteString("ON CONFLICT (kind, document_number) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: perfil + %d apuntes del ejercicio %d\n", outPath, len(demoRecords), year)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
