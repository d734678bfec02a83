// Package humanize maps canonical error codes to the display copy shown to
// the user. Resolution is layered: exact family/subtype match first, then the
// family entry, then a generic fallback. A backend-supplied message replaces
// only the description of a matched entry; titles are stable per family so
// the same failure always reads the same way in the UI.
//
// Humanize is a pure function of its inputs: no I/O, no state, byte-identical
// output for identical input.
package humanize

import "github.com/centavo-app/centavo/internal/errdefs"

// Humanized is the display form of a classified failure.
type Humanized struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// entry is one row of the copy catalog.
type entry struct {
	title       string
	description string
}

const (
	genericTitle       = "Error"
	genericDescription = "Ocurrió un error inesperado. Intenta de nuevo más tarde."
)

// catalog holds the es-LA copy for every canonical code. Family rows double
// as the fallback for unrecognized subtypes of that family.
var catalog = map[string]entry{
	errdefs.CodeBadRequest: {
		title:       "Solicitud inválida",
		description: "Los datos enviados no son válidos. Revisa el formulario e intenta de nuevo.",
	},
	errdefs.CodeUnauthorized: {
		title:       "Sesión requerida",
		description: "Tu sesión no es válida o ha terminado. Inicia sesión nuevamente.",
	},
	errdefs.CodeInvalidToken: {
		title:       "Sesión inválida",
		description: "Tu credencial de sesión no es válida. Inicia sesión nuevamente.",
	},
	errdefs.CodeTokenExpired: {
		title:       "Sesión expirada",
		description: "Tu sesión ha expirado. Inicia sesión nuevamente.",
	},
	errdefs.CodeForbidden: {
		title:       "Acceso denegado",
		description: "No tienes permisos para realizar esta acción.",
	},
	errdefs.CodeNotFound: {
		title:       "No encontrado",
		description: "El recurso solicitado no existe o fue eliminado.",
	},
	errdefs.CodeConflict: {
		title:       "Conflicto",
		description: "La operación entra en conflicto con el estado actual de tus datos.",
	},
	errdefs.CodeEmailAlreadyExists: {
		title:       "Correo electrónico ya existe",
		description: "Ya existe una cuenta registrada con ese correo electrónico.",
	},
	errdefs.CodeForeignKeyViolation: {
		title:       "Registro en uso",
		description: "No se puede completar la operación porque el registro está en uso por otros datos.",
	},
	errdefs.CodeServiceUnavailable: {
		title:       "Servicio no disponible",
		description: "El servicio no está disponible por el momento. Intenta más tarde.",
	},
	errdefs.CodeGatewayTimeout: {
		title:       "Tiempo de espera agotado",
		description: "El servidor tardó demasiado en responder. Intenta de nuevo.",
	},
	errdefs.CodeInternal: {
		title:       "Error interno",
		description: genericDescription,
	},
	errdefs.CodeNotImplemented: {
		title:       "No implementado",
		description: "Esta operación aún no está disponible.",
	},
}

// Humanize resolves a canonical code (possibly unseen) and an optional server
// message into display copy. It never fails: unknown codes degrade to their
// family entry and finally to the generic fallback. An empty serverMessage
// means "no server-supplied detail".
func Humanize(code, serverMessage string) Humanized {
	e, ok := catalog[code]
	if !ok {
		e, ok = catalog[errdefs.Family(code)]
	}
	if !ok {
		return Generic(serverMessage)
	}

	h := Humanized{Title: e.title, Description: e.description}
	if serverMessage != "" && serverMessage != e.description {
		h.Description = serverMessage
	}
	return h
}

// Generic is the catalog-less fallback: a neutral title with either the
// server's own words or the generic description.
func Generic(description string) Humanized {
	if description == "" {
		description = genericDescription
	}
	return Humanized{Title: genericTitle, Description: description}
}
