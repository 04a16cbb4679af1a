package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/dailycare/internal/config"
	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/utils"
)

// AuthService owns password verification, bearer token issuance and the
// one-time-code lifecycle. Tokens are self-contained; the only state the
// service keeps is the OTP ledger.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	sms SMSSender
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, cfg *config.Config, sms SMSSender) *AuthService {
	return &AuthService{db: db, cfg: cfg, sms: sms}
}

// Register creates a new user account. The plaintext password is hashed
// before it touches the database and is never logged.
func (s *AuthService) Register(email, password, fullName string, phone *string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// AuthenticateByPassword verifies credentials and issues a bearer token.
// Unknown email and wrong password return the identical error so the
// response carries no enumeration signal.
func (s *AuthService) AuthenticateByPassword(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(s.cfg.JWTSecret, user.Email, s.cfg.TokenExpires)
}

// OTPResult reports the outcome of an OTP request. DebugCode is set only
// when SMS delivery did not happen and the debug response is explicitly
// enabled in configuration.
type OTPResult struct {
	Sent      bool
	DebugCode string
}

// RequestOTP issues a fresh one-time code for a registered phone. The
// code is written as an upsert against the unique phone column, so a
// prior code is replaced in the same statement and two concurrent
// requests can never both leave live codes.
func (s *AuthService) RequestOTP(phone string) (*OTPResult, error) {
	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnregisteredPhone
		}
		return nil, err
	}

	code, err := generateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	record := models.OneTimeCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.OTPExpires),
	}

	// One row per phone; the conflict path atomically replaces the
	// previous challenge.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":       record.Code,
			"expires_at": record.ExpiresAt,
			"used":       false,
			"used_at":    nil,
			"updated_at": time.Now(),
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your Daily Care verification code is: %s. Valid for %d minutes.",
		code, int(s.cfg.OTPExpires.Minutes()))

	if err := s.sms.Send(phone, message); err != nil {
		// Delivery failure is not fatal; fall back to the debug path.
		log.Printf("[Auth] SMS delivery to %s failed: %v", phone, err)
		result := &OTPResult{Sent: false}
		if s.cfg.OTPDebugResponse {
			result.DebugCode = code
		}
		return result, nil
	}

	return &OTPResult{Sent: true}, nil
}

// VerifyOTP checks a submitted code and issues a bearer token. A
// matching unexpired code is burned on first use; an expired code fails
// with ErrOTPExpired and stays unused.
func (s *AuthService) VerifyOTP(phone, code string) (string, error) {
	var record models.OneTimeCode
	err := s.db.Where("phone = ? AND code = ? AND used = ?", phone, code, false).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidOTP
		}
		return "", err
	}

	if record.Expired(time.Now()) {
		return "", ErrOTPExpired
	}

	now := time.Now()
	res := s.db.Model(&models.OneTimeCode{}).
		Where("id = ? AND used = ?", record.ID, false).
		Updates(map[string]interface{}{"used": true, "used_at": &now})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else burned it first.
		return "", ErrInvalidOTP
	}

	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnregisteredPhone
		}
		return "", err
	}

	return utils.GenerateToken(s.cfg.JWTSecret, user.Email, s.cfg.TokenExpires)
}

// ValidateToken resolves a bearer token to its user. The signature and
// expiry checks are self-contained; the store lookup only maps the email
// claim to a live account.
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	email, err := utils.ParseToken(s.cfg.JWTSecret, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return &user, nil
}

func generateOTPCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
