package util

import (
	"encoding/hex"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
)

// ContentHash returns a stable hex digest of source text, used by
// solidity.GetSolcJson to key cached solc compilations by content
// rather than by file path.
func ContentHash(source string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(source)))
}

// FileExists reports whether path names a regular file or directory.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
