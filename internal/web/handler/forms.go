package handler

import (
	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

// loginForm is the credentials form. Both fields are required before the
// case API is ever called.
type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// tutelaForm is the create/edit case form. The evidence file travels outside
// the struct, as a multipart file part.
type tutelaForm struct {
	NumeroCaso           string `form:"numero_caso" validate:"required"`
	NombreAccionante     string `form:"nombre_accionante" validate:"required"`
	Estado               string `form:"estado" validate:"required,oneof=pendiente en_tramite tramitada"`
	ObservacionAbogada   string `form:"observacion_abogada"`
	ObservacionRespuesta string `form:"observacion_respuesta"`
}

func (f tutelaForm) input() ports.TutelaInput {
	return ports.TutelaInput{
		NumeroCaso:           f.NumeroCaso,
		NombreAccionante:     f.NombreAccionante,
		Estado:               domain.Estado(f.Estado),
		ObservacionAbogada:   f.ObservacionAbogada,
		ObservacionRespuesta: f.ObservacionRespuesta,
	}
}

func tutelaFormFrom(t *domain.Tutela) tutelaForm {
	return tutelaForm{
		NumeroCaso:           t.NumeroCaso,
		NombreAccionante:     t.NombreAccionante,
		Estado:               string(t.Estado),
		ObservacionAbogada:   t.ObservacionAbogada,
		ObservacionRespuesta: t.ObservacionRespuesta,
	}
}

// userForm covers both create and update. Password is only required on
// create; an empty password on update leaves the stored one unchanged.
type userForm struct {
	Nombre   string `form:"nombre" validate:"required"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password"`
	Rol      string `form:"rol" validate:"required,oneof=administrador abogada visualizador"`
}

func (f userForm) input() ports.UserInput {
	return ports.UserInput{
		Nombre:   f.Nombre,
		Username: f.Username,
		Password: f.Password,
		Rol:      domain.Role(f.Rol),
	}
}
