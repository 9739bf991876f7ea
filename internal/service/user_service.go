package service

import (
	"strings"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/repository"
)

// SellerProfile 卖家资料（脱敏）
type SellerProfile struct {
	MobileNumber      string
	BankAccountNumber string
	BankName          string
	NationalID        string
	NationalCardFront string
	NationalCardBack  string
}

// UserProfile 用户资料
type UserProfile struct {
	User   *models.User
	Seller *SellerProfile
}

// UpdateProfileInput 资料更新参数，nil 表示不修改
type UpdateProfileInput struct {
	Nickname *string
	FullName *string
}

// UserService 资料与收货地址
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) loadOwned(principalID, userID uint) (*models.User, error) {
	if principalID != userID {
		return nil, ErrUserMismatch
	}
	user, err := s.userRepo.GetWithSeller(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetProfile 获取本人资料
func (s *UserService) GetProfile(principalID, userID uint) (*UserProfile, error) {
	user, err := s.loadOwned(principalID, userID)
	if err != nil {
		return nil, err
	}
	return buildUserProfile(user), nil
}

// UpdateProfile 更新昵称与姓名
func (s *UserService) UpdateProfile(principalID, userID uint, input UpdateProfileInput) (*UserProfile, error) {
	user, err := s.loadOwned(principalID, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Nickname != nil {
		if trimmed := strings.TrimSpace(*input.Nickname); trimmed != "" {
			user.Nickname = trimmed
			updates["nickname"] = trimmed
		}
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
		updates["full_name"] = user.FullName
	}
	if len(updates) == 0 {
		return nil, ErrProfileEmpty
	}
	if err := s.userRepo.UpdateFields(user.ID, updates); err != nil {
		return nil, err
	}
	return buildUserProfile(user), nil
}

// GetShippingAddress 获取收货地址
func (s *UserService) GetShippingAddress(principalID, userID uint) (string, error) {
	user, err := s.loadOwned(principalID, userID)
	if err != nil {
		return "", err
	}
	return user.ShippingAddress, nil
}

// UpdateShippingAddress 更新收货地址，去除首尾空白
func (s *UserService) UpdateShippingAddress(principalID, userID uint, address string) (string, error) {
	user, err := s.loadOwned(principalID, userID)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(address)
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"shipping_address": trimmed}); err != nil {
		return "", err
	}
	return trimmed, nil
}

func buildUserProfile(user *models.User) *UserProfile {
	profile := &UserProfile{User: user}
	if user.IsSeller() && user.Seller != nil {
		profile.Seller = &SellerProfile{
			MobileNumber:      MaskMobileNumber(user.Seller.MobileNumber),
			BankAccountNumber: MaskBankAccount(user.Seller.BankAccountNumber),
			BankName:          user.Seller.BankName,
			NationalID:        MaskNationalID(user.Seller.NationalID),
			NationalCardFront: imageProvided(user.Seller.NationalCardFront),
			NationalCardBack:  imageProvided(user.Seller.NationalCardBack),
		}
	}
	return profile
}

// MaskMobileNumber 手机号脱敏：xxxxxx + 倒数第 4 至倒数第 2 位 + x
func MaskMobileNumber(value string) string {
	runes := []rune(value)
	n := len(runes)
	if n < 4 {
		return value
	}
	return "xxxxxx" + string(runes[n-4:n-1]) + "x"
}

// MaskBankAccount 银行账号脱敏：前 n-4 位为 x，保留倒数第 4 至倒数第 2 位
func MaskBankAccount(value string) string {
	runes := []rune(value)
	n := len(runes)
	if n < 4 {
		return value
	}
	return strings.Repeat("x", n-4) + string(runes[n-4:n-1]) + "x"
}

// MaskNationalID 身份证号脱敏，仅保留后 4 位
func MaskNationalID(value string) string {
	runes := []rune(value)
	n := len(runes)
	if n < 4 {
		return value
	}
	return "xxxxxxxxx" + string(runes[n-4:])
}

func imageProvided(fileName string) string {
	if strings.TrimSpace(fileName) == "" {
		return ""
	}
	return constants.IDCardImageProvided
}
