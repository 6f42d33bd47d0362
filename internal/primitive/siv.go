package primitive

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	aes_sivpb "github.com/tink-crypto/tink-go/v2/proto/aes_siv_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"golang.org/x/crypto/hkdf"

	"google.golang.org/protobuf/proto"
)

const (
	// sivKeySize is the key size tink requires for AES-SIV.
	sivKeySize = 64

	sivKeyInfo = "formcipher/aes-siv"
)

// AESSIV is deterministic authenticated encryption (AES-SIV) keyed by HKDF-SHA256 of the passphrase.
// Equal plaintexts under equal passphrases produce equal ciphertexts.
type AESSIV struct{}

// Encrypt implements Primitive.
func (s AESSIV) Encrypt(text, passphrase string) (string, error) {
	daeadPrimitive, err := s.primitive(passphrase)
	if err != nil {
		return "", err
	}

	ciphertext, err := daeadPrimitive.EncryptDeterministically([]byte(text), nil)
	if err != nil {
		return "", fmt.Errorf("encrypting: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt implements Primitive.
func (s AESSIV) Decrypt(ciphertext, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	daeadPrimitive, err := s.primitive(passphrase)
	if err != nil {
		return nil, err
	}

	plaintext, err := daeadPrimitive.DecryptDeterministically(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	return plaintext, nil
}

func (AESSIV) primitive(passphrase string) (tink.DeterministicAEAD, error) {
	key := make([]byte, sivKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), nil, []byte(sivKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	kh, err := newDeterministicAEADKeyHandle(key)
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	daeadPrimitive, err := daead.New(kh)
	if err != nil {
		return nil, fmt.Errorf("creating DeterministicAEAD: %w", err)
	}

	return daeadPrimitive, nil
}

// newDeterministicAEADKeyHandle creates a Tink keyset handle for AES-SIV from raw key bytes.
func newDeterministicAEADKeyHandle(key []byte) (*keyset.Handle, error) {
	serializedKey, err := proto.Marshal(&aes_sivpb.AesSivKey{
		Version:  0,
		KeyValue: key,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing AesSivKey: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         "type.googleapis.com/google.crypto.tink.AesSivKey",
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("reading keyset: %w", err)
	}

	return handle, nil
}
