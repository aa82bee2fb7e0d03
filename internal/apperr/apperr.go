// Package apperr porte les erreurs métier typées que les services remontent
// aux handlers HTTP. Chaque erreur connaît le statut HTTP qui lui correspond.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Status: http.StatusConflict, Detail: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: fmt.Sprintf(format, args...)}
}

func Internal(detail string) *Error {
	return &Error{Status: http.StatusInternalServerError, Detail: detail}
}

// StatusOf renvoie le statut HTTP associé à err, ou 500 pour toute erreur
// non typée (panne du store, etc.) afin de ne pas divulguer de détail interne.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// DetailOf renvoie le message destiné au client. Les erreurs non typées sont
// masquées derrière un message générique.
func DetailOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Detail
	}
	return "Erreur interne du serveur"
}
