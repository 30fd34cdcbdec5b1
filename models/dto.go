package models

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required,min=1,max=100"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostInput struct {
	Title     string `validate:"required,min=1,max=255"`
	Content   string `validate:"required"`
	Excerpt   string `validate:"max=500"`
	Published bool
}

// Update inputs use pointers so "field absent" and "field set to zero value"
// stay distinguishable; nil fields are left untouched.
type UpdatePostInput struct {
	Title     *string `validate:"omitempty,min=1,max=255"`
	Content   *string `validate:"omitempty,min=1"`
	Excerpt   *string `validate:"omitempty,max=500"`
	Published *bool
}

type CreateCommentInput struct {
	PostID  string `validate:"required"`
	Content string `validate:"required,min=1,max=2000"`
}

type UpdateUserInput struct {
	Name   *string `validate:"omitempty,min=1,max=100"`
	Avatar *string
	Role   *string `validate:"omitempty,oneof=user admin"`
}

type PostListParams struct {
	Limit  int
	Offset int
}
