package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nlhsang/chat-account/cmd/config"
	"github.com/nlhsang/chat-account/constant"
	"github.com/nlhsang/chat-account/model"
	accountrepo "github.com/nlhsang/chat-account/repository/account"
	redisrepo "github.com/nlhsang/chat-account/repository/redis"
	"github.com/nlhsang/chat-account/resettoken"
	"github.com/nlhsang/chat-account/thirdparty/mailer"
	"github.com/nlhsang/chat-account/thirdparty/rabbitmq"
	"github.com/nlhsang/chat-account/utils/errors"
	"github.com/nlhsang/chat-account/utils/logger"
	"github.com/nlhsang/chat-account/utils/password"
	"go.uber.org/zap"
)

type AuthApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AccountResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	LoginStatus(ctx context.Context, tokenString string) bool
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
	GetProfile(ctx context.Context, accountID uint64) (*model.AccountResponse, error)
	ListAccounts(ctx context.Context) (*model.AccountListResponse, error)
	UpdateProfile(ctx context.Context, accountID uint64, req *model.UpdateProfileRequest) (*model.AccountResponse, error)
	ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req *model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, rawToken string, req *model.ResetPasswordRequest) error
}

type authAppImpl struct {
	config      *config.Config
	accountRepo accountrepo.AccountRepository
	redisRepo   redisrepo.Repository
	resetTokens resettoken.Manager
	mailer      mailer.Client
	publisher   *rabbitmq.Publisher
}

func NewAuthApp(config *config.Config, accountRepo accountrepo.AccountRepository, redisRepo redisrepo.Repository,
	resetTokens resettoken.Manager, mailClient mailer.Client, publisher *rabbitmq.Publisher) AuthApp {
	return &authAppImpl{
		config:      config,
		accountRepo: accountRepo,
		redisRepo:   redisRepo,
		resetTokens: resetTokens,
		mailer:      mailClient,
		publisher:   publisher,
	}
}

func (s *authAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AccountResponse, error) {
	// Pre-checks give the friendly error; the unique index on email/phone is
	// what actually guarantees uniqueness under concurrent registrations.
	existing, err := s.accountRepo.Get(ctx, &model.AccountFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err accountRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrCredentialExists, "Email has already been registered")
	}

	existing, err = s.accountRepo.Get(ctx, &model.AccountFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Register] err accountRepo.Get phone", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrCredentialExists, "Phone has already been registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		logger.Error("[Register] err password.Hash", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entity := &model.AccountEntity{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Photo:        constant.DefaultPhoto,
		Bio:          constant.DefaultBio,
		CreatedAt:    time.Now(),
	}

	entity, err = s.accountRepo.Create(ctx, entity)
	if err != nil {
		if err == accountrepo.ErrDuplicateEntry {
			// Lost a race with a concurrent registration. The tripped index
			// could be either credential, so the message names both.
			return nil, errors.SetCustomErrorMessage(constant.ErrCredentialExists, "Email or phone has already been registered")
		}
		logger.Error("[Register] err accountRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.AccountRegisteredMessage{
			AccountID: entity.ID,
			Name:      entity.Name,
			Email:     entity.Email,
			CreatedAt: entity.CreatedAt,
		}
		if err := s.publisher.PublishAccountRegistered(msg); err != nil {
			logger.Error("[Register] publish account registered", zap.String("error", err.Error()))
		}
	}

	return model.NewAccountResponse(entity), nil
}

func (s *authAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{Email: req.Email, Phone: req.Phone, MatchAny: true})
	if err != nil {
		logger.Error("[Login] err accountRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "User does not exist")
	}

	if !password.Verify(req.Password, account.PasswordHash) {
		return nil, errors.SetCustomErrorMessage(constant.ErrInvalidPassword, "Password is incorrect")
	}

	token, jti, err := s.generateJWT(account.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, account.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		AccessToken: token,
		Account:     model.NewAccountResponse(account),
	}, nil
}

// Logout removes the token's session entry; the signature stays valid until
// natural expiry but verification fails once the registry entry is gone.
func (s *authAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}

	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// LoginStatus never errors: missing, malformed, expired and revoked tokens
// all answer false.
func (s *authAppImpl) LoginStatus(ctx context.Context, tokenString string) bool {
	if tokenString == "" {
		return false
	}
	_, err := s.ValidateToken(ctx, tokenString)
	return err == nil
}

func (s *authAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return 0, err
	}

	accountID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	sessionAccountID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or revoked session")
	}
	if sessionAccountID != accountID {
		return 0, fmt.Errorf("token does not match account session")
	}

	return accountID, nil
}

func (s *authAppImpl) GetProfile(ctx context.Context, accountID uint64) (*model.AccountResponse, error) {
	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{ID: accountID})
	if err != nil {
		logger.Error("[GetProfile] err accountRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		// Account removed after the token was issued.
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "User not found")
	}
	return model.NewAccountResponse(account), nil
}

func (s *authAppImpl) ListAccounts(ctx context.Context) (*model.AccountListResponse, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		logger.Error("[ListAccounts] err accountRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	res := &model.AccountListResponse{
		Length:   len(accounts),
		Accounts: make([]*model.AccountResponse, 0, len(accounts)),
	}
	for i := range accounts {
		res.Accounts = append(res.Accounts, model.NewAccountResponse(&accounts[i]))
	}
	return res, nil
}

func (s *authAppImpl) UpdateProfile(ctx context.Context, accountID uint64, req *model.UpdateProfileRequest) (*model.AccountResponse, error) {
	// Conflict only when a *different* account owns the email or phone; a
	// no-op update keeping one's own values must pass.
	taken, err := s.accountRepo.Get(ctx, &model.AccountFilter{
		Email:     req.Email,
		Phone:     req.Phone,
		MatchAny:  true,
		ExcludeID: accountID,
	})
	if err != nil {
		logger.Error("[UpdateProfile] err accountRepo.Get conflict", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if taken != nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrCredentialExists, "Email or phone is already in use")
	}

	if err := s.accountRepo.UpdateProfile(ctx, accountID, req); err != nil {
		if err == accountrepo.ErrDuplicateEntry {
			return nil, errors.SetCustomErrorMessage(constant.ErrCredentialExists, "Email or phone is already in use")
		}
		logger.Error("[UpdateProfile] err accountRepo.UpdateProfile", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{ID: accountID})
	if err != nil {
		logger.Error("[UpdateProfile] err accountRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		return nil, errors.SetCustomErrorMessage(constant.ErrNotFound, "User not found")
	}
	return model.NewAccountResponse(account), nil
}

func (s *authAppImpl) ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error {
	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{Email: req.Email, Phone: req.Phone, MatchAny: true})
	if err != nil {
		logger.Error("[ChangePassword] err accountRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		return errors.SetCustomErrorMessage(constant.ErrNotFound, "User does not exist")
	}

	if !password.Verify(req.OldPassword, account.PasswordHash) {
		return errors.SetCustomErrorMessage(constant.ErrInvalidRequest, "Old password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		logger.Error("[ChangePassword] err password.Hash", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.accountRepo.UpdatePassword(ctx, account.ID, hashed); err != nil {
		logger.Error("[ChangePassword] err accountRepo.UpdatePassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.publishPasswordChanged(account.ID)
	return nil
}

func (s *authAppImpl) ForgotPassword(ctx context.Context, req *model.ForgotPasswordRequest) error {
	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{Email: req.Email})
	if err != nil {
		logger.Error("[ForgotPassword] err accountRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		return errors.SetCustomErrorMessage(constant.ErrNotFound, "User does not exist")
	}

	rawSecret, err := s.resetTokens.Create(ctx, account.ID)
	if err != nil {
		logger.Error("[ForgotPassword] err resetTokens.Create", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	link := s.resetPasswordLink(rawSecret)
	body := fmt.Sprintf(`
		<p>Dear <b>%s</b>,</p>
		<p>Please use the url below to reset your password.</p>
		<p>Reset password link: <a href="%s">%s</a></p>
		<p style="color: #F00;">This reset link is valid for only 10 minutes.</p>
		<p>If you have any concerns or questions, please don't hesitate to get back to us.</p>
	`, account.Name, link, link)

	// The dispatch is awaited on purpose: a failed send must surface as an
	// error rather than a silent success. The raw secret never appears in
	// logs or the error message.
	if err := s.mailer.Send(ctx, account.Email, "Reset Password Request", body); err != nil {
		logger.Error("[ForgotPassword] err mailer.Send", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrMailDelivery)
	}
	return nil
}

func (s *authAppImpl) ResetPassword(ctx context.Context, rawToken string, req *model.ResetPasswordRequest) error {
	accountID, err := s.resetTokens.Consume(ctx, rawToken)
	if err != nil {
		if err == resettoken.ErrNotFound {
			// Forged and expired tokens get the same answer.
			return errors.SetCustomErrorMessage(constant.ErrNotFound, "Token is invalid or has expired")
		}
		logger.Error("[ResetPassword] err resetTokens.Consume", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	account, err := s.accountRepo.Get(ctx, &model.AccountFilter{ID: accountID})
	if err != nil {
		logger.Error("[ResetPassword] err accountRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if account == nil {
		return errors.SetCustomErrorMessage(constant.ErrNotFound, "User does not exist")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		logger.Error("[ResetPassword] err password.Hash", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.accountRepo.UpdatePassword(ctx, account.ID, hashed); err != nil {
		logger.Error("[ResetPassword] err accountRepo.UpdatePassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.publishPasswordChanged(account.ID)
	return nil
}

// resetPasswordLink points at the web client's reset page. Development talks
// to the local client; production uses the configured client origin.
func (s *authAppImpl) resetPasswordLink(rawSecret string) string {
	if s.config.Environment == "development" {
		return fmt.Sprintf("http://localhost:3000/reset-password/%s", rawSecret)
	}
	return fmt.Sprintf("https://%s/reset-password/%s", s.config.Mail.ClientURL, rawSecret)
}

// generateJWT creates a signed access token for the account
func (s *authAppImpl) generateJWT(accountID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func (s *authAppImpl) parseClaims(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

func (s *authAppImpl) publishPasswordChanged(accountID uint64) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.PasswordChangedMessage{
		AccountID: accountID,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.PublishPasswordChanged(msg); err != nil {
		logger.Error("[ChangePassword] publish password changed", zap.String("error", err.Error()))
	}
}
