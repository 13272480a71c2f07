package security

import (
	"crypto/rand"
	"errors"
)

const maxAlphabetSize = 256

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errLargeAlphabet  = errors.New("alphabet must have at most 256 characters")
)

// RandomString returns length characters drawn uniformly from alphabet using
// crypto/rand. Bytes at or above the largest multiple of len(alphabet) are
// rejected so every character is equally likely.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case len(alphabet) == 0:
		return "", errEmptyAlphabet
	case len(alphabet) > maxAlphabetSize:
		return "", errLargeAlphabet
	}

	size := len(alphabet)
	ceiling := maxAlphabetSize - maxAlphabetSize%size
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= ceiling {
				continue
			}
			value = append(value, alphabet[int(b)%size])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}
