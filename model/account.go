package model

import "time"

// AccountEntity represents the account table entity
type AccountEntity struct {
	ID           uint64     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Photo        string     `db:"photo" json:"photo"`
	Bio          string     `db:"bio" json:"bio"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// AccountFilter for querying accounts. When MatchAny is set and both email and
// phone are present, rows matching either are returned (login by email or
// phone, conflict probe on profile update). ExcludeID drops the caller's own
// row from the match.
type AccountFilter struct {
	ID        uint64
	Email     string
	Phone     string
	MatchAny  bool
	ExcludeID uint64
}

// AccountResponse is an account with credentials stripped
type AccountResponse struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Photo     string     `json:"photo"`
	Bio       string     `json:"bio"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func NewAccountResponse(ent *AccountEntity) *AccountResponse {
	return &AccountResponse{
		ID:        ent.ID,
		Name:      ent.Name,
		Email:     ent.Email,
		Phone:     ent.Phone,
		Photo:     ent.Photo,
		Bio:       ent.Bio,
		CreatedAt: ent.CreatedAt,
		UpdatedAt: ent.UpdatedAt,
	}
}

// RegisterRequest for account registration. Field order matters: validation
// failures are reported for the first offending field, matching the client's
// expected message order.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6,max=20"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	Phone          string `json:"phone" validate:"required,vnphone"`
}

// LoginRequest accepts email or phone
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=Phone"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string           `json:"accessToken"`
	Account     *AccountResponse `json:"user"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,vnphone"`
	Photo string `json:"photo"`
	Bio   string `json:"bio" validate:"omitempty,max=300"`
}

type ChangePasswordRequest struct {
	Email             string `json:"email" validate:"required_without=Phone"`
	Phone             string `json:"phone"`
	OldPassword       string `json:"oldPassword" validate:"required"`
	NewPassword       string `json:"newPassword" validate:"required,min=6,max=20"`
	RepeatNewPassword string `json:"repeatNewPassword" validate:"required,eqfield=NewPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	NewPassword       string `json:"newPassword" validate:"required,min=6,max=20"`
	RepeatNewPassword string `json:"repeatNewPassword" validate:"required,eqfield=NewPassword"`
}

type AccountListResponse struct {
	Length   int                `json:"length"`
	Accounts []*AccountResponse `json:"users"`
}

type LoginStatusResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}
