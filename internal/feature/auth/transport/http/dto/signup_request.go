// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for /api/cadastro.
// Presence of nome, email and senha is checked by the usecase so the
// client gets the same message for every missing field.
type SignupReq struct {
	Name         string `json:"nome" form:"nome"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"senha" form:"senha"`
	Neighborhood string `json:"bairro" form:"bairro"`
	Street       string `json:"rua" form:"rua"`
	Reference    string `json:"referencia" form:"referencia"`
}

// SignupRes is returned after a successful registration.
type SignupRes struct {
	Mensagem string `json:"mensagem"`
	Redirect string `json:"redirect"`
}
