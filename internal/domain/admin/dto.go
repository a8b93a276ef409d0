package admin

type CreateUserRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Role             string `json:"role" binding:"required"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
