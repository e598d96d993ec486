package handler

import (
	"time"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

// Request and response types for the booking API. JSON field names follow
// the original mobile client's wire format, which is Spanish throughout.

type registerRequest struct {
	NombreUsuario string `json:"nombreUsuario" validate:"required"`
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	Contrasena    string `json:"contrasena" validate:"required"`
}

type registerResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type loginRequest struct {
	NombreUsuario string `json:"nombreUsuario" validate:"required"`
	Contrasena    string `json:"contrasena" validate:"required"`
}

type userResponse struct {
	ID            string `json:"id"`
	NombreUsuario string `json:"nombreUsuario"`
	EsAdmin       int    `json:"es_admin"`
	Rol           string `json:"rol"`
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
}

type loginResponse struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type usersOverviewResponse struct {
	OK    bool           `json:"ok"`
	Count int64          `json:"count"`
	Docs  []userResponse `json:"docs"`
}

type createClassRequest struct {
	Nombre          string `json:"nombre" validate:"required"`
	Descripcion     string `json:"descripcion" validate:"required"`
	FechaHora       string `json:"fechaHora" validate:"required"`
	PlazasMaximas   int    `json:"plazasMaximas" validate:"required,gt=0"`
	Imagen          string `json:"imagen" validate:"required"`
	ImagenContenido string `json:"imagenContenido" validate:"required"`
}

type classResponse struct {
	ID            string    `json:"_id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	FechaHora     time.Time `json:"fechaHora"`
	PlazasMaximas int       `json:"plazasMaximas"`
	PlazasLibres  int       `json:"plazasLibres"`
	Imagen        string    `json:"imagen"`
	Inscritos     []string  `json:"inscritos"`
	Cancelaciones []string  `json:"cancelaciones"`
}

type createClassResponse struct {
	OK    bool          `json:"ok"`
	ID    string        `json:"id"`
	Clase classResponse `json:"clase"`
}

type listClassesResponse struct {
	OK     bool            `json:"ok"`
	Clases []classResponse `json:"clases"`
}

type enrollRequest struct {
	UsuarioID string `json:"usuarioId" validate:"required"`
}

type enrollResponse struct {
	OK         bool `json:"ok"`
	YaInscrito bool `json:"yaInscrito"`
}

type rosterResponse struct {
	OK       bool     `json:"ok"`
	Usuarios []string `json:"usuarios"`
}

// cancelRequest's late flag is a pointer: the mobile client always sends it,
// but other callers may omit it and let the server apply the cutoff.
type cancelRequest struct {
	UsuarioID               string `json:"usuarioId" validate:"required"`
	CancelacionFueraDePlazo *bool  `json:"cancelacionFueraDePlazo"`
}

type cancelResponse struct {
	OK                      bool `json:"ok"`
	Cancelada               bool `json:"cancelada"`
	CancelacionFueraDePlazo bool `json:"cancelacionFueraDePlazo"`
}

func toUserResponse(u *domain.User) userResponse {
	esAdmin := 0
	if u.IsAdmin {
		esAdmin = 1
	}
	return userResponse{
		ID:            u.ID,
		NombreUsuario: u.Username,
		EsAdmin:       esAdmin,
		Rol:           u.EffectiveRole(),
		Nombre:        u.FirstName,
		Apellidos:     u.LastName,
	}
}

func toClassResponse(c *domain.Class) classResponse {
	return classResponse{
		ID:            c.ID,
		Nombre:        c.Name,
		Descripcion:   c.Description,
		FechaHora:     c.ScheduledAt,
		PlazasMaximas: c.Capacity,
		PlazasLibres:  c.RemainingSeats(),
		Imagen:        c.Image,
		Inscritos:     c.Enrolled,
		Cancelaciones: c.LateCancellations,
	}
}

func toClassResponses(classes []*domain.Class) []classResponse {
	out := make([]classResponse, 0, len(classes))
	for _, c := range classes {
		out = append(out, toClassResponse(c))
	}
	return out
}
