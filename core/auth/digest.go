package auth

import (
	"crypto/md5"
	"fmt"
)

// HashPassword digests pwd to uppercase hex. The scheme matches the digests
// already stored in the users table.
//
// TODO: migrate stored credentials to bcrypt, then drop this.
func HashPassword(pwd string) string {
	sum := md5.Sum([]byte(pwd))
	return fmt.Sprintf("%X", sum)
}
