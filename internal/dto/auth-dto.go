package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

type UserDTO struct {
	ID       uint64 `json:"id"`
	Fio      string `json:"fio"`
	Login    string `json:"login"`
	RoleName string `json:"role_name"`
}
