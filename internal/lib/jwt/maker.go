// Package jwt реализует выпуск и разбор подписанных JWT токенов
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с использованием секретного ключа
// и срока жизни токена (TTL). Ошибки разбора различимы: подпись,
// структура и истечение срока возвращаются разными sentinel ошибками.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen минимальная длина секретного ключа в байтах (256 бит).
const MinSecretLen = 32

var (
	// ErrShortSecret возвращается конструктором, если секретный ключ короче 256 бит.
	ErrShortSecret = errors.New("jwt secret key must be at least 32 bytes")
	// ErrExpired возвращается, когда срок действия токена истёк.
	ErrExpired = errors.New("token expired")
	// ErrSignatureInvalid возвращается при несовпадении подписи (подмена или чужой ключ).
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrMalformed возвращается, когда токен структурно некорректен.
	ErrMalformed = errors.New("token malformed")
)

// Maker описывает интерфейс для выпуска и разбора JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанной ролью.
	GenerateToken(userID int64, username, role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает *Claims.
	ParseToken(tokenStr string) (*Claims, error)
	// IsExpired сообщает, истёк ли срок действия токена. Любая другая
	// ошибка разбора даёт false — её обнаруживает ParseToken.
	IsExpired(tokenStr string) bool
	// TTL возвращает срок жизни выпускаемых токенов.
	TTL() time.Duration
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl.
//
// Возвращает ErrShortSecret, если ключ короче 256 бит — это ошибка
// конфигурации, сервис не должен стартовать с таким ключом.
func NewMaker(secretKey string, ttl time.Duration) (*MakerImpl, error) {
	if len(secretKey) < MinSecretLen {
		return nil, ErrShortSecret
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}, nil
}

// GenerateToken создает JWT токен с заданными userID, username и role,
// подписывая его секретным ключом алгоритмом HS256.
//
// Subject токена равен username, время жизни определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userID int64, username, role string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия.
//
// Возвращает ErrExpired, ErrSignatureInvalid или ErrMalformed в зависимости
// от причины отказа; вызывающие стороны ветвятся на ErrExpired отдельно
// (для него допустим refresh), остальные отклоняются сразу.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformed)
	}
	return claims, nil
}

// IsExpired возвращает true, если разбор токена падает именно из-за
// истечения срока. Прочие ошибки (подпись, структура) дают false.
func (j *MakerImpl) IsExpired(tokenStr string) bool {
	_, err := j.ParseToken(tokenStr)
	return errors.Is(err, ErrExpired)
}

// TTL возвращает срок жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}

// classify сводит цепочку ошибок библиотеки к sentinel ошибкам пакета.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrMalformed
	}
}
