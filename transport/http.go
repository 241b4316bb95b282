package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	authapp "github.com/nlhsang/chat-account/application/auth"
	"github.com/nlhsang/chat-account/cmd/config"
	"github.com/nlhsang/chat-account/constant"
	"github.com/nlhsang/chat-account/model"
	utilsContext "github.com/nlhsang/chat-account/utils/context"
	"github.com/nlhsang/chat-account/utils/errors"
	validatorx "github.com/nlhsang/chat-account/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	Config  *config.Config
	AuthApp authapp.AuthApp
}

func NewTransport(cfg *config.Config, authApp authapp.AuthApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		Config:  cfg,
		AuthApp: authApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/forgotPassword", rh.ForgotPassword).Methods(http.MethodPost)
	mux.HandleFunc("/resetPassword/{resetToken}", rh.ResetPassword).Methods(http.MethodPut)
	mux.HandleFunc("/loggedIn", rh.LoginStatus).Methods(http.MethodGet)

	// Protected routes
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodGet)
	mux.HandleFunc("/", rh.ListAccounts).Methods(http.MethodGet)
	mux.HandleFunc("/profile", rh.GetProfile).Methods(http.MethodGet)
	mux.HandleFunc("/profile", rh.UpdateProfile).Methods(http.MethodPut)
	mux.HandleFunc("/changePassword", rh.ChangePassword).Methods(http.MethodPut)

	// Service-to-service route, guarded by a static key instead of a session
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(cfg.Auth.InternalAPIKey))
	internal.HandleFunc("/accounts/{id}", rh.InternalGetAccount).Methods(http.MethodGet)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(authApp))

	return mux
}

// Register handler
// @Summary Register account
// @Description Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 201 {object} model.AccountResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	res, err := s.AuthApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully!", res)
}

// Login handler
// @Summary Login
// @Description Login with email or phone; sets the accessToken cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	setAccessTokenCookie(w, s.Config, res.AccessToken)
	writeSuccess(w, http.StatusOK, "User logged in successfully!", res)
}

// Logout handler
// @Summary Logout
// @Description Revoke the session and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} transport.response
// @Router /logout [get]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.AuthApp.Logout(ctx, accessTokenFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}

	clearAccessTokenCookie(w, s.Config)
	writeSuccess(w, http.StatusOK, "User logged out successfully!", nil)
}

// LoginStatus handler
// @Summary Login status
// @Description Report whether the caller holds a live session
// @Tags Auth
// @Produce json
// @Success 200 {object} model.LoginStatusResponse
// @Router /loggedIn [get]
func (s *RestHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	isLoggedIn := s.AuthApp.LoginStatus(ctx, accessTokenFromRequest(r))
	writeJSON(w, http.StatusOK, model.LoginStatusResponse{IsLoggedIn: isLoggedIn})
}

// ListAccounts handler
// @Summary List accounts
// @Description All accounts with credentials stripped
// @Tags Account
// @Produce json
// @Success 200 {object} model.AccountListResponse
// @Router / [get]
func (s *RestHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.AuthApp.ListAccounts(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Get all users successfully!", res)
}

// GetProfile handler
// @Summary Get profile
// @Description The authenticated account's profile
// @Tags Account
// @Produce json
// @Success 200 {object} model.AccountResponse
// @Failure 404 {object} errors.CustomError
// @Router /profile [get]
func (s *RestHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := utilsContext.GetAccountID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.AuthApp.GetProfile(ctx, accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Get user profile successfully!", res)
}

// UpdateProfile handler
// @Summary Update profile
// @Description Update the authenticated account's profile
// @Tags Account
// @Accept json
// @Produce json
// @Param request body model.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} model.AccountResponse
// @Failure 400 {object} errors.CustomError
// @Router /profile [put]
func (s *RestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := utilsContext.GetAccountID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	res, err := s.AuthApp.UpdateProfile(ctx, accountID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Update user profile successfully!", res)
}

// ChangePassword handler
// @Summary Change password
// @Description Change password using the current one
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} transport.response
// @Failure 400 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /changePassword [put]
func (s *RestHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	if err := s.AuthApp.ChangePassword(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Change password successfully!", nil)
}

// ForgotPassword handler
// @Summary Forgot password
// @Description Email a reset link to the account owner
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} transport.response
// @Failure 404 {object} errors.CustomError
// @Failure 500 {object} errors.CustomError
// @Router /forgotPassword [post]
func (s *RestHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	if err := s.AuthApp.ForgotPassword(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("Reset password link has been sent to %s", req.Email), nil)
}

// ResetPassword handler
// @Summary Reset password
// @Description Reset password with an emailed single-use token
// @Tags Auth
// @Accept json
// @Produce json
// @Param resetToken path string true "Raw reset token"
// @Param request body model.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} transport.response
// @Failure 404 {object} errors.CustomError
// @Router /resetPassword/{resetToken} [put]
func (s *RestHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawToken := mux.Vars(r)["resetToken"]

	var req model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomErrorMessage(constant.ErrInvalidRequest, validatorx.Message(err)))
		return
	}

	if err := s.AuthApp.ResetPassword(ctx, rawToken, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Reset password successfully!", nil)
}

// InternalGetAccount handler
// @Summary Get account (internal)
// @Description Account lookup for sibling services
// @Tags Internal
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} model.AccountResponse
// @Failure 404 {object} errors.CustomError
// @Router /internal/accounts/{id} [get]
func (s *RestHandler) InternalGetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.GetProfile(ctx, accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "success", res)
}
