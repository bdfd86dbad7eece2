package catalog

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/sqlercore/sqler/errs"
)

// catalogKey and catalogNonce are compile-time constants. This is a
// documented, accepted weakness: the nonce never varies, so this key must
// never be reused across installs with plaintexts that could collide under
// it. A future revision is expected to replace this with a key derived
// from environment/config (an SQLER_CATALOG_KEY override); that derivation
// is intentionally not implemented here, see DESIGN.md.
var catalogKey = [32]byte{
	0x4b, 0x95, 0x1c, 0x3a, 0x7e, 0x02, 0xd8, 0x61,
	0x2f, 0x49, 0xa6, 0x0b, 0xc3, 0x55, 0x8e, 0x17,
	0x90, 0xfd, 0x24, 0x6c, 0xb1, 0x3d, 0x58, 0xe9,
	0x0a, 0x77, 0xc2, 0x41, 0x9b, 0x66, 0xf0, 0x13,
}

var catalogNonce = [12]byte{
	0x1f, 0x3b, 0x5d, 0x7a, 0x9c, 0xbe, 0xd0, 0xf2,
	0x14, 0x36, 0x58, 0x7b,
}

// encrypt seals plaintext with AES-256-GCM under the fixed catalog key and
// nonce, producing ciphertext || auth_tag on disk.
func encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nil, catalogNonce[:], plaintext, nil), nil
}

// decrypt opens ciphertext (= ciphertext || auth_tag) under the fixed
// catalog key and nonce.
func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, catalogNonce[:], ciphertext, nil)
	if err != nil {
		return nil, errs.NewDecryptionError("authenticated decryption failed", err)
	}

	return plaintext, nil
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(catalogKey[:])
	if err != nil {
		return nil, errs.NewEncryptionError("building AES cipher failed", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errs.NewEncryptionError("building GCM AEAD failed", err)
	}

	return gcm, nil
}
