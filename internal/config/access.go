package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// AccessConfig gates session creation on a shared access key. The key itself
// is never configured, only its bcrypt hash.
type AccessConfig struct {
	KeyHash    string
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewAccessConfig reads CV_ACCESS_KEY_HASH (optional), BCRYPT_COST
// (default: 12) and ACCESS_KEY_PEPPER (optional).
func NewAccessConfig() (*AccessConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &AccessConfig{
		KeyHash:    os.Getenv("CV_ACCESS_KEY_HASH"),
		BcryptCost: cost,
		Pepper:     os.Getenv("ACCESS_KEY_PEPPER"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AccessConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if c.KeyHash != "" {
		if _, err := bcrypt.Cost([]byte(c.KeyHash)); err != nil {
			return fmt.Errorf("CV_ACCESS_KEY_HASH is not a bcrypt hash: %w", err)
		}
	}
	return nil
}

// Enabled reports whether an access key is required.
func (c *AccessConfig) Enabled() bool {
	return c != nil && c.KeyHash != ""
}

// HashKey hashes an access key using bcrypt (with optional pepper).
func (c *AccessConfig) HashKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("access key cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access key: %w", err)
	}

	return string(hash), nil
}

// VerifyKey reports whether key matches the configured hash. It is always
// true when no hash is configured.
func (c *AccessConfig) VerifyKey(key string) bool {
	if !c.Enabled() {
		return true
	}
	err := bcrypt.CompareHashAndPassword([]byte(c.KeyHash), []byte(key+c.Pepper))
	return err == nil
}
