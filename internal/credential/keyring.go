// Package credential stores the app-lock passcode in the system keyring.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "digitaldiary"

// passcodeKey is the keyring entry holding the app-lock passcode.
const passcodeKey = "app-lock-passcode"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/digitaldiary/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("digitaldiary-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SetPasscode stores the app-lock passcode.
func SetPasscode(passcode string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  passcodeKey,
		Data: []byte(passcode),
	})
	if err != nil {
		return fmt.Errorf("storing passcode: %w", err)
	}

	return nil
}

// VerifyPasscode reports whether the supplied passcode matches the stored
// one. When no passcode has been stored, any input is accepted.
func VerifyPasscode(passcode string) (bool, error) {
	ring, err := openKeyring()
	if err != nil {
		return false, err
	}

	item, err := ring.Get(passcodeKey)
	if err == keyring.ErrKeyNotFound {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading passcode: %w", err)
	}

	return string(item.Data) == passcode, nil
}

// ClearPasscode removes the stored passcode, disabling the app lock.
func ClearPasscode() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(passcodeKey)
	if err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing passcode: %w", err)
	}

	return nil
}
