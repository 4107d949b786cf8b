package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id. При их изменении старые хеши продолжают проверяться,
// а VerifyAndUpdate возвращает свежий хеш для перезаписи в БД.
type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

var defaultArgon2Params = argon2Params{
	memory:  64 * 1024,
	time:    3,
	threads: 4,
	saltLen: 16,
	keyLen:  32,
}

var ErrMalformedHash = errors.New("malformed password hash")

const passwordSymbols = "@$!%*?&"

// PasswordHelper инкапсулирует хеширование паролей и политику сложности.
type PasswordHelper struct {
	params argon2Params
}

func NewPasswordHelper() *PasswordHelper {
	return &PasswordHelper{params: defaultArgon2Params}
}

// Hash создает Argon2id хеш пароля в PHC-формате
func (h *PasswordHelper) Hash(password string) (string, error) {
	salt := make([]byte, h.params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, h.params.time, h.params.memory, h.params.threads, h.params.keyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.time,
		h.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyAndUpdate проверяет пароль против хеша.
// Если хеш посчитан с устаревшими параметрами, вторым значением возвращается
// свежий хеш - вызывающий обязан сохранить его, но только при matched == true.
func (h *PasswordHelper) VerifyAndUpdate(plain, hashed string) (matched bool, newHash string, err error) {
	params, salt, key, err := decodeArgon2Hash(hashed)
	if err != nil {
		return false, "", err
	}

	candidate := argon2.IDKey([]byte(plain), salt, params.time, params.memory, params.threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return false, "", nil
	}

	if params != h.params {
		rehashed, err := h.Hash(plain)
		if err != nil {
			return true, "", err
		}
		return true, rehashed, nil
	}

	return true, "", nil
}

// ValidatePassword проверяет политику сложности: минимум 12 символов,
// строчная и заглавная буквы, цифра, спецсимвол из фиксированного набора,
// без пробельных символов.
func (h *PasswordHelper) ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < 12 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	return hasLower && hasUpper && hasDigit && hasSymbol
}

func decodeArgon2Hash(hashed string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(hashed, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return params, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrMalformedHash
	}

	params.saltLen = uint32(len(salt))
	params.keyLen = uint32(len(key))

	return params, salt, key, nil
}
