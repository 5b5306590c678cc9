package handler

type LoginParams struct {
	Email    string  `json:"email"    form:"email"`
	Password string  `json:"password" form:"password"`
	Next     *string `json:"next"     form:"next"`
}

type RegisterParams struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type ChangePasswordParams struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type EmailParams struct {
	Email string `query:"email"`
}

type UserIDParams struct {
	UserID int64 `param:"user_id"`
}

type UserRoleParams struct {
	UserID int64  `param:"user_id"`
	Role   string `json:"role" form:"role"`
}
