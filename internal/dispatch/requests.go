package dispatch

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
)

// --------- Auth / usuários ---------

type loginRequest struct {
	Usuario  string `json:"usuario" binding:"required,max=60"`
	Password string `json:"password" binding:"required"`
}

type idRequest struct {
	ID uint `json:"id" binding:"required"`
}

type createUserRequest struct {
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Apellido string `json:"apellido" binding:"required,max=100"`
	Usuario  string `json:"usuario" binding:"required,max=60"`
	Password string `json:"password" binding:"required,min=4"`
	Level    int    `json:"level" binding:"required,min=1"`
}

type updateUserData struct {
	Nombre   *string `json:"nombre" binding:"omitempty,min=1,max=100"`
	Apellido *string `json:"apellido" binding:"omitempty,min=1,max=100"`
	Usuario  *string `json:"usuario" binding:"omitempty,min=1,max=60"`
	Level    *int    `json:"level" binding:"omitempty,min=1"`
}

type updateUserRequest struct {
	ID   uint           `json:"id" binding:"required"`
	Data updateUserData `json:"data"`
}

type changePasswordRequest struct {
	ID      uint   `json:"id" binding:"required"`
	Current string `json:"current"`
	New     string `json:"new" binding:"required,min=4"`
}

// --------- Roles ---------

type updateRoleRequest struct {
	ID          uint     `json:"id" binding:"required"`
	Label       string   `json:"label" binding:"max=60"`
	Permissions []string `json:"permissions" binding:"required,dive,required"`
}

// --------- Clientes ---------

type customerPageRequest struct {
	Page   int    `json:"page" binding:"min=0"`
	Limit  int    `json:"limit" binding:"min=0"`
	Search string `json:"search" binding:"max=100"`
}

type customerData struct {
	Documento string `json:"documento" binding:"required,max=30"`
	Nombre    string `json:"nombre" binding:"required,max=100"`
	Apellido  string `json:"apellido" binding:"required,max=100"`
	Telefono  string `json:"telefono" binding:"max=30"`
	Email     string `json:"email" binding:"omitempty,email,max=120"`
}

func (d customerData) toData() customer.Data {
	return customer.Data{
		Documento: d.Documento,
		Nombre:    d.Nombre,
		Apellido:  d.Apellido,
		Telefono:  optional(d.Telefono),
		Email:     optional(d.Email),
	}
}

// newCustomerData acompanha shift.create; o documento vem do próprio
// pedido do turno.
type newCustomerData struct {
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Apellido string `json:"apellido" binding:"required,max=100"`
	Telefono string `json:"telefono" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email,max=120"`
}

func (d newCustomerData) toData(documento string) customer.Data {
	return customerData{
		Documento: documento,
		Nombre:    d.Nombre,
		Apellido:  d.Apellido,
		Telefono:  d.Telefono,
		Email:     d.Email,
	}.toData()
}

type updateCustomerRequest struct {
	ID   uint         `json:"id" binding:"required"`
	Data customerData `json:"data"`
}

type documentRequest struct {
	Documento string `json:"documento" binding:"required,max=30"`
}

// --------- Serviços ---------

type serviceNameRequest struct {
	Nombre string `json:"nombre" binding:"required,max=100"`
}

type updateServiceRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Nombre string `json:"nombre" binding:"required,max=100"`
}

// --------- Turnos ---------

type createShiftRequest struct {
	Fecha        string           `json:"fecha" binding:"required,date"`
	Hora         string           `json:"hora" binding:"required,hhmm"`
	Documento    string           `json:"documento" binding:"required,max=30"`
	Servicios    []uint           `json:"servicios" binding:"required,min=1,dive,required"`
	NuevoCliente *newCustomerData `json:"nuevo_cliente"`
}

type dateRequest struct {
	Fecha string `json:"fecha" binding:"required,date"`
}

type monthRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

type yearRequest struct {
	Year int `json:"year" binding:"required"`
}

type initialDataRequest struct {
	Date  string `json:"date" binding:"required,date"`
	Year  int    `json:"year" binding:"required"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
}

type updateStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Estado string `json:"estado" binding:"required,estado"`
}

// --------- Backup / auditoria ---------

type backupRequest struct {
	Path string `json:"path"`
}

type restoreRequest struct {
	Path string `json:"path" binding:"required"`
}

type auditLogsRequest struct {
	Action string `json:"action" binding:"max=50"`
	Entity string `json:"entity" binding:"max=50"`
	From   string `json:"from" binding:"omitempty,date"`
	To     string `json:"to" binding:"omitempty,date"`
	Page   int    `json:"page" binding:"min=0"`
	Limit  int    `json:"limit" binding:"min=0"`
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
