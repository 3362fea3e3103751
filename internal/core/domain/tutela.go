package domain

import "time"

// Estado is the processing state of a tutela.
type Estado string

const (
	EstadoPendiente Estado = "pendiente"
	EstadoEnTramite Estado = "en_tramite"
	EstadoTramitada Estado = "tramitada"
)

// Valid reports whether e is one of the known states.
func (e Estado) Valid() bool {
	switch e {
	case EstadoPendiente, EstadoEnTramite, EstadoTramitada:
		return true
	}
	return false
}

// Label returns the human-readable Spanish label shown on screen.
func (e Estado) Label() string {
	switch e {
	case EstadoEnTramite:
		return "En Trámite"
	case EstadoTramitada:
		return "Tramitada"
	default:
		return "Pendiente"
	}
}

// Estados lists every known state, in display order.
func Estados() []Estado {
	return []Estado{EstadoPendiente, EstadoEnTramite, EstadoTramitada}
}

// Tutela is a protection-action case record. The portal does not own or
// mutate these; they are payload exchanged with the case API.
type Tutela struct {
	ID                   int       `json:"id"`
	NumeroCaso           string    `json:"numero_caso"`
	NombreAccionante     string    `json:"nombre_accionante"`
	Estado               Estado    `json:"estado"`
	ObservacionAbogada   string    `json:"observacion_abogada"`
	ObservacionRespuesta string    `json:"observacion_respuesta"`
	EvidenciaPath        string    `json:"evidencia_path"`
	EvidenciaNombre      string    `json:"evidencia_nombre"`
	CreadoPorNombre      string    `json:"creado_por_nombre"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// HasEvidencia reports whether the case has an attached evidence file.
func (t Tutela) HasEvidencia() bool { return t.EvidenciaPath != "" }
