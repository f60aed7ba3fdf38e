// internal/rendezvous/keymaterial.go
// Derives per-connection session key material from the shared Kerberos-
// style secret. This domain has no user passwords, only a server-wide
// secret every client shares.

package rendezvous

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveSessionKey stretches the shared secret into a 32-byte key scoped to
// pid, so two connections never share derived key material even though
// they share the same root secret.
func DeriveSessionKey(secret string, pid uint32) ([32]byte, error) {
	var out [32]byte

	salt := make([]byte, 4)
	salt[0] = byte(pid >> 24)
	salt[1] = byte(pid >> 16)
	salt[2] = byte(pid >> 8)
	salt[3] = byte(pid)

	kdf := hkdf.New(sha256.New, []byte(secret), salt, []byte("trackday-rendezvous-session"))
	if _, err := io.ReadFull(kdf, out[:]); err != nil {
		return out, err
	}
	return out, nil
}
