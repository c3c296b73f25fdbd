package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RemoveString returns hay without every occurrence of needle, preserving
// order.
func RemoveString(hay []string, needle string) []string {
	res := make([]string, 0, len(hay))
	for _, str := range hay {
		if str != needle {
			res = append(res, str)
		}
	}
	return res
}

// RandomAlphabetString generates a random alphanumeric string of the given
// length, used for token markers and blob ids.
func RandomAlphabetString(length int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken,
			// at which point serving traffic is pointless anyway.
			panic(err)
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String()
}

// NormalizeForSearch folds text for substring search: katakana to
// hiragana, upper case to lower case.
func NormalizeForSearch(text string) string {
	runes := []rune(strings.ToLower(text))
	for i, r := range runes {
		// katakana block ァ..ン sits 0x60 above its hiragana counterpart
		if r >= 'ァ' && r <= 'ン' {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
