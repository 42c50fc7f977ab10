// Package cryptox decrypts credential payloads that clients encrypt with a
// pre-shared passphrase.
//
// The wire format is the OpenSSL "enc" envelope produced by CryptoJS.AES and
// `openssl enc -aes-256-cbc -md md5`:
//
//	base64("Salted__" | salt[8] | AES-256-CBC(PKCS#7(plaintext)))
//
// Key and IV are derived from the passphrase and salt with EVP_BytesToKey
// (MD5, one iteration).
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yeabtsegataye/equb-system/internal/common"
)

const (
	saltHeader = "Salted__"
	saltLen    = 8
	keyLen     = 32
)

var (
	// ErrDecryption is returned for malformed ciphertext or a key mismatch.
	ErrDecryption = errors.New("decryption failed")
	// ErrEmptyKey is returned when no passphrase is configured.
	ErrEmptyKey = errors.New("empty key")
)

// Decrypt reverses Encrypt. Any failure, including a wrong key, is reported as
// ErrDecryption. The returned plaintext may be empty; callers treat that as a
// failed decryption too.
func Decrypt(ciphertext, key string) (string, error) {
	if key == "" {
		return "", ErrDecryption
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", ErrDecryption
	}

	if len(raw) < len(saltHeader)+saltLen || !bytes.HasPrefix(raw, []byte(saltHeader)) {
		return "", ErrDecryption
	}

	salt := raw[len(saltHeader) : len(saltHeader)+saltLen]
	data := raw[len(saltHeader)+saltLen:]
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", ErrDecryption
	}

	k, iv := deriveKeyIV([]byte(key), salt)

	block, err := aes.NewCipher(k)
	if err != nil {
		return "", ErrDecryption
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	plain, err = pkcs7Unpad(plain)
	if err != nil {
		return "", ErrDecryption
	}

	// a wrong key that happens to leave valid padding almost never leaves valid UTF-8
	if !utf8.Valid(plain) {
		return "", ErrDecryption
	}

	return string(plain), nil
}

// Encrypt produces the envelope accepted by Decrypt using a fresh random salt.
func Encrypt(plaintext, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return encryptWithSalt([]byte(plaintext), []byte(key), common.GenerateRandByteArray(saltLen))
}

func encryptWithSalt(plaintext, key, salt []byte) (string, error) {
	k, iv := deriveKeyIV(key, salt)

	block, err := aes.NewCipher(k)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(saltHeader)+saltLen+len(padded))
	copy(out, saltHeader)
	copy(out[len(saltHeader):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltHeader)+saltLen:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// deriveKeyIV implements OpenSSL's EVP_BytesToKey with MD5 and a single round.
func deriveKeyIV(password, salt []byte) (key, iv []byte) {
	var (
		derived []byte
		prev    []byte
	)
	for len(derived) < keyLen+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+aes.BlockSize]
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrDecryption
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrDecryption
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrDecryption
		}
	}
	return b[:len(b)-n], nil
}
