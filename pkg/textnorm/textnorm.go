// Package textnorm compara textos capturados a mano sin distinguir mayúsculas ni acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas y quita acentos: "Cancún" y "CANCUN" dan "cancun".
// Caser y Transformer guardan estado, por eso se crean en cada llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Contains informa si sub aparece en s tras aplicar Fold a ambos.
func Contains(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}

// Match devuelve la opción equivalente a s (misma forma tras Fold) y si la encontró.
func Match(s string, options []string) (string, bool) {
	key := Fold(strings.TrimSpace(s))
	for _, o := range options {
		if Fold(o) == key {
			return o, true
		}
	}
	return "", false
}
