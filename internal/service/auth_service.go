package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"avicena/internal/domain"
	"avicena/internal/repository"
)

// ErrUsernameTaken имя пользователя уже занято
var ErrUsernameTaken = errors.New("username taken")

// AuthService регистрация и проверка учётных записей
type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register создаёт учётную запись; занятое имя — типизированная ошибка,
// чтобы вызывающему не приходилось гадать по bool, что пошло не так
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

// Verify не различает неизвестное имя и неверный пароль: наружу уходит
// только bool, перечислить имена пользователей по ответам нельзя
func (s *AuthService) Verify(ctx context.Context, username, password string) (bool, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return checkPasswordHash(password, u.PasswordHash), nil
}
