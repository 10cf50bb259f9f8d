// Package taxid normaliza identificaciones tributarias de clientes.
// Los NIT colombianos se validan con el dígito de verificación módulo 11 de la DIAN.
package taxid

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidCheckDigit el dígito de verificación del NIT no corresponde.
var ErrInvalidCheckDigit = errors.New("taxid: dígito de verificación inválido")

// pesos aplicados a los 9 dígitos base del NIT, de izquierda a derecha.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize devuelve la forma canónica del código:
//   - 9 dígitos (con o sin puntos): NIT sin DV, se completa como "900123456-8".
//   - 9 dígitos + "-" + DV: se valida el DV.
//   - cualquier otro formato (cédulas, identificaciones extranjeras) se devuelve recortado.
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}
	for _, r := range code {
		if unicode.IsLetter(r) {
			return code, nil
		}
	}

	base, dv, hasDV := strings.Cut(code, "-")
	digits := onlyDigits(base)
	if len(digits) != 9 {
		return code, nil
	}
	expected := CheckDigit(digits)
	if hasDV {
		dv = strings.TrimSpace(dv)
		if len(dv) != 1 || dv[0] != expected {
			return "", fmt.Errorf("%w: NIT %s espera %c", ErrInvalidCheckDigit, digits, expected)
		}
	}
	return digits + "-" + string(expected), nil
}

// CheckDigit calcula el DV de 9 dígitos base. No valida la entrada.
func CheckDigit(digits string) byte {
	var sum int
	for i := 0; i < len(nitWeights) && i < len(digits); i++ {
		sum += int(digits[i]-'0') * nitWeights[i]
	}
	rem := sum % 11
	if rem == 0 || rem == 1 {
		return byte('0' + rem)
	}
	return byte('0' + (11 - rem))
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == ' ':
		default:
			return ""
		}
	}
	return b.String()
}
