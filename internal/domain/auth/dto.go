package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetValidateDTO struct {
	Email  string `json:"email" binding:"required,email"`
	Answer string `json:"answer" binding:"required"`
}

type ResetConfirmDTO struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required"`
}
