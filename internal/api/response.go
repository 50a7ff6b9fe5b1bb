// Package api holds the response bodies shared by every feature.
package api

// ErrorResponse is the uniform failure body: {"erro": "..."}.
type ErrorResponse struct {
	Erro string `json:"erro"`
}

// MessageResponse is the plain success body: {"mensagem": "..."}.
type MessageResponse struct {
	Mensagem string `json:"mensagem"`
}

// Messages shared across features.
const (
	MsgServerError    = "Erro no servidor."
	MsgInvalidRequest = "Requisição inválida."
	MsgNotFound       = "Recurso não encontrado."
	MsgInvalidToken   = "Token inválido."
	MsgForbidden      = "Acesso negado."
)
