// services/auth_service.go - Registration, login, verification, password reset
package services

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strings"
	"time"

	"hackreg/models"
	"hackreg/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	authTokenExpiry    = 30 * 24 * time.Hour
	resetTokenExpiry   = 24 * time.Hour
	emailTokenExpiry   = 24 * time.Hour
	verificationCodeLen = 8
	verificationExpiry  = 10 * time.Minute
)

type tokenKind string

const (
	tokenAuth   tokenKind = "auth"
	tokenReset  tokenKind = "reset"
	tokenVerify tokenKind = "verify"
)

type AuthService struct {
	db       *gorm.DB
	events   *EventService
	notifier Notifier
}

func NewAuthService(db *gorm.DB, events *EventService, notifier Notifier) *AuthService {
	return &AuthService{db: db, events: events, notifier: notifier}
}

// Register creates an account and returns it with a fresh auth token. The
// verification email is sent after the account is committed; a send failure
// is logged and does not undo the registration.
func (s *AuthService) Register(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", utils.Bad("A valid email is required")
	}
	if len(password) < 6 {
		return nil, "", utils.Bad("Password must be 6 or more characters.")
	}

	settings, err := s.events.GetSettings()
	if err != nil {
		return nil, "", err
	}
	if !settings.IsRegistrationOpen(time.Now()) {
		return nil, "", utils.Bad("Registration is closed")
	}
	if settings.EnableWhitelist && !domainWhitelisted(email, settings.WhitelistedEmails) {
		return nil, "", utils.Bad("That email domain is not eligible to register")
	}

	var count int64
	s.db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count)
	if count > 0 {
		return nil, "", utils.Bad("An account with that email already exists!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", utils.ServerErr("failed to hash password")
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Status:   models.StatusUnverified,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", utils.Bad("An account with that email already exists!")
	}

	token, err := s.signToken(tokenAuth, user.ID, authTokenExpiry)
	if err != nil {
		return nil, "", utils.ServerErr("failed to generate token")
	}

	s.sendVerificationEmail(user)
	return user, token, nil
}

// Login authenticates with email and password.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.Bad("Missing email or password")
	}

	var user models.User
	if err := s.db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		return nil, "", utils.Bad("Unknown account")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", utils.Bad("Incorrect password")
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", now)
	user.LastLogin = &now

	token, err := s.signToken(tokenAuth, user.ID, authTokenExpiry)
	if err != nil {
		return nil, "", utils.ServerErr("failed to generate token")
	}
	return &user, token, nil
}

// LoginWithToken re-authenticates an existing session token.
func (s *AuthService) LoginWithToken(token string) (*models.User, error) {
	userID, err := s.ParseToken(tokenAuth, token)
	if err != nil {
		return nil, utils.Bad("Unknown account")
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, utils.Bad("Unknown account")
	}
	return &user, nil
}

// SendVerification (re)issues the verification email with a fresh code.
func (s *AuthService) SendVerification(user *models.User) {
	s.sendVerificationEmail(user)
}

// VerifyEmail flips an UNVERIFIED account to VERIFIED using either the
// emailed JWT token or the short verification code.
func (s *AuthService) VerifyEmail(statuses *StatusService, token, code string) (*models.User, error) {
	var user models.User

	switch {
	case token != "":
		userID, err := s.ParseToken(tokenVerify, token)
		if err != nil {
			return nil, utils.Bad("Invalid or expired verification token")
		}
		if err := s.db.First(&user, userID).Error; err != nil {
			return nil, utils.NotFound("User not found")
		}
	case code != "":
		err := s.db.Where("verification_code = ?", code).First(&user).Error
		if err != nil {
			return nil, utils.Bad("Invalid verification code")
		}
		if user.VerificationExpiry == nil || time.Now().After(*user.VerificationExpiry) {
			return nil, utils.Bad("Verification code expired")
		}
	default:
		return nil, utils.Bad("Missing verification token or code")
	}

	// Verification only ever moves UNVERIFIED forward. A re-submitted token
	// or code must not rewrite any later status; in particular REJECTED and
	// WAITLISTED are admission decisions, not verification state.
	if verificationSettled(&user) {
		return &user, nil
	}
	if _, err := statuses.SetStatus(user.ID, models.StatusVerified); err != nil {
		return nil, err
	}
	user.Status = models.StatusVerified

	if err := s.notifier.Send([]string{user.Email}, "Welcome!", TemplateWelcome, map[string]string{
		"name": user.Name,
	}); err != nil {
		log.Printf("WARN: failed to send welcome email to %s: %v", user.Email, err)
	}
	return &user, nil
}

// RequestPasswordReset emails a reset link. Always succeeds from the
// caller's perspective so account existence is not leaked.
func (s *AuthService) RequestPasswordReset(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := s.db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		return
	}
	token, err := s.signToken(tokenReset, user.ID, resetTokenExpiry)
	if err != nil {
		log.Printf("WARN: failed to sign reset token for %s: %v", email, err)
		return
	}
	link := getenvDefault("FRONTEND_URL", "http://localhost:3000") + "/reset?token=" + token
	if err := s.notifier.Send([]string{user.Email}, "Password reset", TemplatePasswordReset, map[string]string{
		"link": link,
	}); err != nil {
		log.Printf("WARN: failed to send password reset email to %s: %v", email, err)
	}
}

// ResetPassword sets a new password from a valid reset token.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return utils.Bad("Password must be 6 or more characters.")
	}
	userID, err := s.ParseToken(tokenReset, token)
	if err != nil {
		return utils.Bad("Invalid or expired reset token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.ServerErr("failed to hash password")
	}
	result := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", string(hash))
	if result.Error != nil {
		return utils.ServerErr("failed to update password")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("User not found")
	}
	return nil
}

// ================== TOKENS ==================

// signToken issues an HS256 token of the given kind for a user.
func (s *AuthService) signToken(kind tokenKind, userID uint, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"kind":    string(kind),
		"exp":     time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken validates a token of the given kind and returns its user id.
func (s *AuthService) ParseToken(kind tokenKind, tokenString string) (uint, error) {
	return ParseToken(string(kind), tokenString)
}

// ParseToken validates any token and checks its kind claim. Exposed for the
// auth middleware.
func ParseToken(kind, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, utils.Unauthorized("Invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, utils.Unauthorized("Invalid token claims")
	}
	if k, _ := claims["kind"].(string); k != kind {
		return 0, utils.Unauthorized("Wrong token type")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, utils.Unauthorized("Invalid token claims")
	}
	return uint(id), nil
}

// ================== INTERNALS ==================

func (s *AuthService) sendVerificationEmail(user *models.User) {
	code := randomCode(verificationCodeLen)
	expiry := time.Now().Add(verificationExpiry)
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"verification_code":   code,
		"verification_expiry": expiry,
	}).Error; err != nil {
		log.Printf("WARN: failed to store verification code for %s: %v", user.Email, err)
		return
	}

	token, err := s.signToken(tokenVerify, user.ID, emailTokenExpiry)
	if err != nil {
		log.Printf("WARN: failed to sign verification token for %s: %v", user.Email, err)
		return
	}
	link := getenvDefault("FRONTEND_URL", "http://localhost:3000") + "/verify?token=" + token

	if err := s.notifier.Send([]string{user.Email}, "Verify your email", TemplateVerification, map[string]string{
		"name": user.Name,
		"code": code,
		"link": link,
	}); err != nil {
		log.Printf("WARN: failed to send verification email to %s: %v", user.Email, err)
	}
}

// verificationSettled reports whether the account already moved past email
// verification, whatever it moved to.
func verificationSettled(u *models.User) bool {
	return u.Status != models.StatusUnverified
}

func randomCode(length int) string {
	raw := make([]byte, (length*3+3)/4)
	rand.Read(raw)
	return base64.RawURLEncoding.EncodeToString(raw)[:length]
}

// domainWhitelisted checks an email against a comma-separated domain list.
func domainWhitelisted(email, whitelist string) bool {
	domain := emailDomain(email)
	for _, allowed := range strings.Split(whitelist, ",") {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
			return true
		}
	}
	return false
}
