package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "Secret1@pass"

type authFixture struct {
	svc    *AuthService
	tokens *TokenService
	mailer *recordingMailer
	fs     afero.Fs
	db     *gorm.DB
}

func setupAuthService(t *testing.T) authFixture {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := testConfig(t)
	cfg.Upload.Dir = "/data/uploads"
	fs := afero.NewMemMapFs()
	tokens := NewTokenService(cfg.JWT)
	mailer := &recordingMailer{}
	svc := NewAuthService(cfg, repository.NewUserRepository(db), NewBcryptHasher(bcrypt.MinCost), tokens, NewLocalFileStorage(fs, cfg.Upload), mailer)
	return authFixture{svc: svc, tokens: tokens, mailer: mailer, fs: fs, db: db}
}

func (f authFixture) registerActive(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.svc.Register(RegisterInput{Email: email, Password: testPassword, Nickname: "nick"})
	require.NoError(t, err)
	token, err := f.tokens.Issue(user, constants.TokenTypeVerifyEmail)
	require.NoError(t, err)
	activated, err := f.svc.VerifyEmail(token.Value)
	require.NoError(t, err)
	return activated
}

func TestRegisterBuyerSendsVerifyMail(t *testing.T) {
	f := setupAuthService(t)
	user, err := f.svc.Register(RegisterInput{Email: " Buyer@Example.com ", Password: testPassword, Locale: "en-US"})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.Equal(t, "buyer", user.Nickname)
	assert.Equal(t, constants.RoleBuyer, user.Role)
	assert.False(t, user.IsActive)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	mails := f.mailer.mails()
	require.Len(t, mails, 1)
	assert.Equal(t, MailKindVerifyEmail, mails[0].kind)
	assert.Contains(t, mails[0].body, "https://market.test/verify-email?token=")

	_, err = f.svc.Register(RegisterInput{Email: "buyer@example.com", Password: testPassword})
	assert.True(t, errors.Is(err, ErrEmailExists))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	f := setupAuthService(t)
	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "bad email", input: RegisterInput{Email: "nope", Password: testPassword}, want: ErrInvalidEmail},
		{name: "weak password", input: RegisterInput{Email: "a@example.com", Password: "password"}, want: ErrWeakPassword},
		{name: "unknown role", input: RegisterInput{Role: "admin", Email: "a@example.com", Password: testPassword}, want: ErrInvalidRole},
		{name: "seller without details", input: RegisterInput{Role: "seller", Email: "a@example.com", Password: testPassword}, want: ErrInvalidSellerInfo},
		{name: "seller bad national id", input: RegisterInput{Role: "seller", Email: "a@example.com", Password: testPassword, Seller: &SellerRegisterInput{
			MobileNumber: "0812345678", BankAccountNumber: "1234567890", BankName: "Bank", NationalID: "123",
		}}, want: ErrInvalidSellerInfo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Register(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterSellerStoresNationalCards(t *testing.T) {
	f := setupAuthService(t)
	front := pngUpload(t, "front.png")
	back := pngUpload(t, "back.png")
	user, err := f.svc.Register(RegisterInput{
		Role:     "seller",
		Email:    "seller@example.com",
		Password: testPassword,
		Seller: &SellerRegisterInput{
			MobileNumber:      "0812345678",
			BankAccountNumber: "1234567890",
			BankName:          "Bank",
			NationalID:        "1234567890123",
			NationalCardFront: &front,
			NationalCardBack:  &back,
		},
	})
	require.NoError(t, err)

	var seller models.Seller
	require.NoError(t, f.db.First(&seller, "user_id = ?", user.ID).Error)
	assert.NotEmpty(t, seller.NationalCardFront)
	exists, _ := afero.Exists(f.fs, "/data/uploads/sellers/"+seller.NationalCardBack)
	assert.True(t, exists)
}

func TestVerifyEmailFlow(t *testing.T) {
	f := setupAuthService(t)
	user, err := f.svc.Register(RegisterInput{Email: "buyer@example.com", Password: testPassword})
	require.NoError(t, err)

	_, err = f.svc.Login("buyer@example.com", testPassword)
	assert.True(t, errors.Is(err, ErrAccountNotActive))

	access, err := f.tokens.Issue(user, constants.TokenTypeAccess)
	require.NoError(t, err)
	_, err = f.svc.VerifyEmail(access.Value)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	verify, err := f.tokens.Issue(user, constants.TokenTypeVerifyEmail)
	require.NoError(t, err)
	activated, err := f.svc.VerifyEmail(verify.Value)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = f.svc.VerifyEmail(verify.Value)
	assert.True(t, errors.Is(err, ErrAccountAlreadyActive))
}

func TestLoginAndRefresh(t *testing.T) {
	f := setupAuthService(t)
	f.registerActive(t, "buyer@example.com")

	_, err := f.svc.Login("buyer@example.com", "Wrong1@pass")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = f.svc.Login("ghost@example.com", testPassword)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	result, err := f.svc.Login("BUYER@example.com", testPassword)
	require.NoError(t, err)
	claims, err := f.tokens.Parse(result.Access.Value, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, []string{constants.RoleBuyer}, claims.Authorities)

	_, _, err = f.svc.Refresh(result.Access.Value)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	user, access, err := f.svc.Refresh(result.Refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
	assert.NotEmpty(t, access.Value)
}

func TestChangePasswordRevokesRefreshTokens(t *testing.T) {
	f := setupAuthService(t)
	f.registerActive(t, "buyer@example.com")
	result, err := f.svc.Login("buyer@example.com", testPassword)
	require.NoError(t, err)

	err = f.svc.ChangePassword(result.User.ID, "Wrong1@pass", "Newpass1@x")
	assert.True(t, errors.Is(err, ErrInvalidPassword))
	err = f.svc.ChangePassword(result.User.ID, testPassword, "short")
	assert.True(t, errors.Is(err, ErrWeakPassword))

	require.NoError(t, f.svc.ChangePassword(result.User.ID, testPassword, "Newpass1@x"))
	_, _, err = f.svc.Refresh(result.Refresh.Value)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = f.svc.Login("buyer@example.com", "Newpass1@x")
	require.NoError(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := setupAuthService(t)
	user := f.registerActive(t, "buyer@example.com")
	before := len(f.mailer.mails())

	require.NoError(t, f.svc.ForgotPassword("ghost@example.com", "en-US"))
	assert.Len(t, f.mailer.mails(), before)

	require.NoError(t, f.svc.ForgotPassword("buyer@example.com", "en-US"))
	mails := f.mailer.mails()
	require.Len(t, mails, before+1)
	assert.Equal(t, MailKindResetPassword, mails[before].kind)
	assert.True(t, strings.Contains(mails[before].body, "/reset-password?token="))

	reset, err := f.tokens.Issue(user, constants.TokenTypeResetPassword)
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(reset.Value, "Another1@pw"))

	err = f.svc.ResetPassword(reset.Value, "Another2@pw")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	f := setupAuthService(t)
	user := &models.User{ID: 3, Email: "a@example.com", Role: constants.RoleBuyer}
	f.tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	issued, err := f.tokens.Issue(user, constants.TokenTypeAccess)
	require.NoError(t, err)
	f.tokens.now = time.Now
	_, err = f.tokens.Parse(issued.Value, constants.TokenTypeAccess)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
