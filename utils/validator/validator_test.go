package validatorx_test

import (
	"testing"

	"github.com/nlhsang/chat-account/model"
	validatorx "github.com/nlhsang/chat-account/utils/validator"
)

func TestRegisterRequestMessages(t *testing.T) {
	validatorx.Init()

	valid := model.RegisterRequest{
		Name:           "Test User",
		Email:          "test@example.com",
		Password:       "password123",
		RepeatPassword: "password123",
		Phone:          "0812345678",
	}

	tests := []struct {
		name   string
		mutate func(r *model.RegisterRequest)
		want   string
	}{
		{
			name:   "missing name",
			mutate: func(r *model.RegisterRequest) { r.Name = "" },
			want:   "Name is required",
		},
		{
			name:   "invalid email",
			mutate: func(r *model.RegisterRequest) { r.Email = "not-an-email" },
			want:   "Email is invalid",
		},
		{
			name:   "password too short",
			mutate: func(r *model.RegisterRequest) { r.Password = "short"; r.RepeatPassword = "short" },
			want:   "Minimum password length is 6 characters",
		},
		{
			name:   "password too long",
			mutate: func(r *model.RegisterRequest) { r.Password = "aaaaaaaaaaaaaaaaaaaaaaaaa"; r.RepeatPassword = "aaaaaaaaaaaaaaaaaaaaaaaaa" },
			want:   "Maximum password length is 20 characters",
		},
		{
			name:   "passwords do not match",
			mutate: func(r *model.RegisterRequest) { r.RepeatPassword = "different123" },
			want:   "Passwords do not match",
		},
		{
			name:   "invalid phone",
			mutate: func(r *model.RegisterRequest) { r.Phone = "12345" },
			want:   "Phone is invalid",
		},
		{
			// Fields are reported in declaration order, so the name failure
			// wins over the bad email.
			name: "first offending field wins",
			mutate: func(r *model.RegisterRequest) {
				r.Name = ""
				r.Email = "not-an-email"
			},
			want: "Name is required",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validatorx.ValidateStruct(req)
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			if got := validatorx.Message(err); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}

	if err := validatorx.ValidateStruct(valid); err != nil {
		t.Fatalf("ValidateStruct() on valid request = %v", err)
	}
}

func TestLoginRequestMessages(t *testing.T) {
	validatorx.Init()

	err := validatorx.ValidateStruct(model.LoginRequest{Password: "password123"})
	if err == nil {
		t.Fatal("ValidateStruct() expected error when both email and phone are empty")
	}
	if got := validatorx.Message(err); got != "Email or phone is required" {
		t.Fatalf("Message() = %q", got)
	}

	if err := validatorx.ValidateStruct(model.LoginRequest{Phone: "0812345678", Password: "password123"}); err != nil {
		t.Fatalf("ValidateStruct() phone-only login = %v", err)
	}
}

func TestChangePasswordRequestMessages(t *testing.T) {
	validatorx.Init()

	err := validatorx.ValidateStruct(model.ChangePasswordRequest{
		Email:             "test@example.com",
		OldPassword:       "oldpassword",
		NewPassword:       "newpassword",
		RepeatNewPassword: "different",
	})
	if err == nil {
		t.Fatal("ValidateStruct() expected error for mismatched repeat password")
	}
	if got := validatorx.Message(err); got != "New password and repeat new password do not match" {
		t.Fatalf("Message() = %q", got)
	}
}

func TestUpdateProfileBioLimit(t *testing.T) {
	validatorx.Init()

	long := make([]byte, 301)
	for i := range long {
		long[i] = 'a'
	}

	err := validatorx.ValidateStruct(model.UpdateProfileRequest{
		Email: "test@example.com",
		Phone: "0812345678",
		Bio:   string(long),
	})
	if err == nil {
		t.Fatal("ValidateStruct() expected error for oversized bio")
	}
	if got := validatorx.Message(err); got != "Maximum text length is 300 characters" {
		t.Fatalf("Message() = %q", got)
	}
}
