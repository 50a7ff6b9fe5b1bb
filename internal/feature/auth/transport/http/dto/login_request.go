package dto

// LoginReq は/api/loginエンドポイントのリクエストボディを表します。
// Missing fields simply fail to match a user.
type LoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"senha" form:"senha"`
}

// UserItem is the public view of a user; the password digest is never included.
type UserItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Neighborhood string `json:"bairro"`
	Street       string `json:"rua"`
	Reference    string `json:"referencia"`
	Role         string `json:"tipo"`
}

// LoginRes is returned after a successful login.
type LoginRes struct {
	Mensagem string   `json:"mensagem"`
	Usuario  UserItem `json:"usuario"`
	Redirect string   `json:"redirect"`
	Token    string   `json:"token,omitempty"`
}
