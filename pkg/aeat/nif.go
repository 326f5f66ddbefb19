// Package aeat contiene validaciones de identificadores fiscales españoles
// (AEAT): DNI/NIF, NIE y CIF de persona jurídica.
package aeat

import (
	"regexp"
	"strconv"
	"strings"
)

// letrasControl tabla oficial de letras de control del DNI/NIF (módulo 23).
// La letra correcta es letrasControl[número mod 23].
const letrasControl = "TRWAGMYFPDXBNJZSQVHLCKE"

// IDKind clase de identificador fiscal detectada.
type IDKind string

const (
	KindDNI     IDKind = "DNI"     // 8 dígitos + letra de control
	KindNIE     IDKind = "NIE"     // X/Y/Z + 7 dígitos + letra de control
	KindCIF     IDKind = "CIF"     // letra de sociedad + 7 dígitos + carácter de control
	KindUnknown IDKind = "UNKNOWN" // formato no reconocido
)

// Status resultado de la validación.
type Status string

const (
	StatusValid              Status = "VALID"
	StatusInvalidChecksum    Status = "INVALID_CHECKSUM"
	StatusUnrecognizedFormat Status = "UNRECOGNIZED_FORMAT"
)

// Validation resultado completo de Validate. ExpectedLetter solo se rellena
// cuando Status es StatusInvalidChecksum.
type Validation struct {
	Kind           IDKind
	Status         Status
	Normalized     string // identificador en mayúsculas y sin espacios
	ExpectedLetter byte
}

// Valid indica si el identificador pasó la validación.
func (v Validation) Valid() bool { return v.Status == StatusValid }

var (
	dniRe = regexp.MustCompile(`^(\d{8})([A-Z])$`)
	nieRe = regexp.MustCompile(`^([XYZ])(\d{7})([A-Z])$`)
	// Letras de sociedad admitidas por la AEAT. El carácter final puede ser
	// dígito o letra según el tipo de entidad.
	cifRe = regexp.MustCompile(`^[ABCDEFGHJNPQRSUVW]\d{7}[0-9A-J]$`)
)

// Validate clasifica y valida un identificador fiscal español.
// Normaliza a mayúsculas y sin espacios antes de clasificar.
//
//   - DNI/NIF: comprueba la letra de control módulo 23.
//   - NIE: sustituye X/Y/Z por 0/1/2 y aplica la misma tabla módulo 23.
//   - CIF: solo comprueba la forma estructural. El dígito de control del CIF
//     (regla mixta numérica/letra según la letra inicial) NO se calcula;
//     limitación documentada, no un bug.
//   - Cualquier otra cosa: formato no reconocido.
//
// Función pura: sin efectos laterales, segura para invocar en cada pulsación.
func Validate(identifier string) Validation {
	norm := strings.ToUpper(strings.TrimSpace(identifier))
	norm = strings.ReplaceAll(norm, " ", "")

	if m := dniRe.FindStringSubmatch(norm); m != nil {
		return checkLetter(KindDNI, norm, m[1], m[2][0])
	}
	if m := nieRe.FindStringSubmatch(norm); m != nil {
		// X→0, Y→1, Z→2 antepuesto a los 7 dígitos forma el número de 8 cifras.
		prefix := map[string]string{"X": "0", "Y": "1", "Z": "2"}[m[1]]
		return checkLetter(KindNIE, norm, prefix+m[2], m[3][0])
	}
	if cifRe.MatchString(norm) {
		return Validation{Kind: KindCIF, Status: StatusValid, Normalized: norm}
	}
	return Validation{Kind: KindUnknown, Status: StatusUnrecognizedFormat, Normalized: norm}
}

// ControlLetter devuelve la letra de control módulo 23 para un número de DNI
// (o de NIE ya sustituido). Útil para autocompletar en el formulario.
func ControlLetter(number int) byte {
	return letrasControl[number%23]
}

func checkLetter(kind IDKind, norm, digits string, got byte) Validation {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Inalcanzable con los regex anclados; se conserva como red de seguridad.
		return Validation{Kind: kind, Status: StatusUnrecognizedFormat, Normalized: norm}
	}
	expected := ControlLetter(n)
	if got != expected {
		return Validation{Kind: kind, Status: StatusInvalidChecksum, Normalized: norm, ExpectedLetter: expected}
	}
	return Validation{Kind: kind, Status: StatusValid, Normalized: norm}
}
