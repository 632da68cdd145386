package share

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// SlugLength is the length of the random slug (22 chars = ~128 bits entropy in base62)
	SlugLength = 22

	// Base62Charset contains alphanumeric characters for URL-safe slugs
	Base62Charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// MaxSlugRetries is the maximum number of attempts to generate a unique slug
	MaxSlugRetries = 5
)

// SlugChecker reports whether a slug is already taken in one table.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// UniqueSlug draws slugs until one is free in checker, up to MaxSlugRetries times.
func UniqueSlug(ctx context.Context, checker SlugChecker) (string, error) {
	for i := 0; i < MaxSlugRetries; i++ {
		slug, err := GenerateSlug()
		if err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}

		exists, err := checker.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug existence: %w", err)
		}
		if !exists {
			return slug, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique slug after %d attempts", MaxSlugRetries)
}

// GenerateSlug generates a cryptographically random 22-character base62 slug
func GenerateSlug() (string, error) {
	charsetLen := big.NewInt(int64(len(Base62Charset)))
	result := make([]byte, SlugLength)

	for i := 0; i < SlugLength; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = Base62Charset[randomIndex.Int64()]
	}

	return string(result), nil
}

// ValidateSlug checks if a slug has the correct format
func ValidateSlug(slug string) bool {
	if len(slug) != SlugLength {
		return false
	}
	for _, c := range slug {
		if !isBase62Char(c) {
			return false
		}
	}
	return true
}

func isBase62Char(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
