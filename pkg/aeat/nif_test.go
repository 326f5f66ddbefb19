package aeat_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/autonomo-pro/pkg/aeat"
)

func TestValidate_DNIConocido(t *testing.T) {
	// 12345678 mod 23 = 14 → 'Z' (ejemplo clásico de la tabla oficial).
	v := aeat.Validate("12345678Z")
	assert.Equal(t, aeat.KindDNI, v.Kind)
	assert.Equal(t, aeat.StatusValid, v.Status)
	assert.True(t, v.Valid())
}

func TestValidate_DNINormalizaMinusculasYEspacios(t *testing.T) {
	v := aeat.Validate("  12345678z ")
	assert.Equal(t, aeat.StatusValid, v.Status)
	assert.Equal(t, "12345678Z", v.Normalized)
}

func TestValidate_DNILetraIncorrecta(t *testing.T) {
	v := aeat.Validate("12345678A")
	require.Equal(t, aeat.StatusInvalidChecksum, v.Status)
	assert.Equal(t, byte('Z'), v.ExpectedLetter,
		"la letra esperada debe viajar en el resultado para mostrarla al usuario")
}

// TestValidate_TablaCompleta recorre las 23 letras de control: el DNI cuyo
// número es n (0..22) debe validar exactamente con la letra TABLE[n], y
// fallar con cualquier otra.
func TestValidate_TablaCompleta(t *testing.T) {
	const tabla = "TRWAGMYFPDXBNJZSQVHLCKE"
	for n := 0; n < 23; n++ {
		dni := fmt.Sprintf("%08d%c", n, tabla[n])
		v := aeat.Validate(dni)
		assert.Equal(t, aeat.StatusValid, v.Status, "DNI %s debe ser válido", dni)

		mala := tabla[(n+1)%23]
		v = aeat.Validate(fmt.Sprintf("%08d%c", n, mala))
		require.Equal(t, aeat.StatusInvalidChecksum, v.Status)
		assert.Equal(t, tabla[n], v.ExpectedLetter)
	}
}

// TestValidate_NIEEquivalenciaDNI verifica la sustitución exacta del prefijo:
// X1234567 equivale al número 01234567, Y e Z desplazan en 1 y 2.
func TestValidate_NIEEquivalenciaDNI(t *testing.T) {
	// 01234567 mod 23 = 19 → 'L'
	v := aeat.Validate("X1234567L")
	assert.Equal(t, aeat.KindNIE, v.Kind)
	assert.Equal(t, aeat.StatusValid, v.Status)

	// 11234567 mod 23 = 10 → 'X'
	assert.Equal(t, aeat.StatusValid, aeat.Validate("Y1234567X").Status)
	// 21234567 mod 23 = 1 → 'R'
	assert.Equal(t, aeat.StatusValid, aeat.Validate("Z1234567R").Status)
}

func TestValidate_NIELetraIncorrecta(t *testing.T) {
	v := aeat.Validate("X1234567T")
	require.Equal(t, aeat.StatusInvalidChecksum, v.Status)
	assert.Equal(t, byte('L'), v.ExpectedLetter)
}

// TestValidate_CIFSoloForma comprueba que el CIF se acepta por estructura sin
// aritmética de dígito de control (limitación documentada).
func TestValidate_CIFSoloForma(t *testing.T) {
	casos := []string{"B12345678", "A0011223J", "W1234567A"}
	for _, c := range casos {
		v := aeat.Validate(c)
		assert.Equal(t, aeat.KindCIF, v.Kind, "CIF %s", c)
		assert.Equal(t, aeat.StatusValid, v.Status, "CIF %s", c)
	}
}

func TestValidate_FormatosNoReconocidos(t *testing.T) {
	casos := []string{
		"",
		"1234567",       // corto
		"123456789",     // sin letra
		"12345678ZZ",    // largo
		"K1234567A",     // K no es letra de sociedad admitida
		"FR123456789",   // IVA intracomunitario francés
		"DE811907980",   // IVA intracomunitario alemán
		"X123456L",      // NIE corto
	}
	for _, c := range casos {
		v := aeat.Validate(c)
		assert.Equal(t, aeat.StatusUnrecognizedFormat, v.Status, "entrada %q", c)
		assert.Equal(t, aeat.KindUnknown, v.Kind, "entrada %q", c)
	}
}

func TestControlLetter(t *testing.T) {
	assert.Equal(t, byte('Z'), aeat.ControlLetter(12345678))
	assert.Equal(t, byte('T'), aeat.ControlLetter(0))
	assert.Equal(t, byte('T'), aeat.ControlLetter(23))
}
