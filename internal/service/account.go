package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = "@$!%*?&"

type AccountService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAccountService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AccountService {
	return &AccountService{users: users, jwter: jwter, log: log}
}

// Register 校验邮箱/密码强度，bcrypt 哈希后落库；绝不返回哈希以外存任何明文
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	email = strings.TrimSpace(email)
	if !emailRe.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	if !strongPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         "user",
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("uid", u.ID))
	return u, nil
}

// Login 查无此人与密码不符返回同一个错误，不泄露哪个字段错了
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.jwter.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// 至少 8 位，含大小写字母、数字和 @$!%*?& 之一；字符集之外的字符不允许
func strongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}
