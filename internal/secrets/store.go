// Package secrets keeps the completion-service credential out of the
// settings document.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	// DefaultService and DefaultUser address the keyring entry.
	DefaultService = "MichelinRecipeGenerator"
	DefaultUser    = "openai_api_key"

	emptySecretErrorMessage = "secret is empty"
	keyringSetErrorFormat   = "store secret in keyring %s/%s: %w"
	keyringDelErrorFormat   = "delete secret from keyring %s/%s: %w"
	flagUpdateErrorFormat   = "update %s flag: %w"
)

// Store holds a single secret.
type Store interface {
	Get() (string, bool)
	Set(secret string) error
	Has() bool
	Delete() error
}

// FlagWriter records whether a secret is present. The settings store
// satisfies it.
type FlagWriter interface {
	Set(key string, value any) error
}

// Keyring stores the secret in the operating system keyring.
type Keyring struct {
	Service string
	User    string
	// Flags, when set, mirrors presence into FlagKey after Set and Delete.
	Flags   FlagWriter
	FlagKey string
}

// NewKeyring returns a keyring store for service/user, using the package
// defaults for empty values.
func NewKeyring(service string, user string) Keyring {
	if strings.TrimSpace(service) == "" {
		service = DefaultService
	}
	if strings.TrimSpace(user) == "" {
		user = DefaultUser
	}
	return Keyring{Service: service, User: user}
}

func (store Keyring) Get() (string, bool) {
	secret, err := keyring.Get(store.Service, store.User)
	if err != nil || secret == "" {
		return "", false
	}
	return secret, true
}

func (store Keyring) Has() bool {
	_, found := store.Get()
	return found
}

func (store Keyring) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New(emptySecretErrorMessage)
	}
	if err := keyring.Set(store.Service, store.User, secret); err != nil {
		return fmt.Errorf(keyringSetErrorFormat, store.Service, store.User, err)
	}
	return store.mirror(true)
}

// Delete removes the secret. Deleting an absent secret is not an error.
func (store Keyring) Delete() error {
	if err := keyring.Delete(store.Service, store.User); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf(keyringDelErrorFormat, store.Service, store.User, err)
	}
	return store.mirror(false)
}

func (store Keyring) mirror(present bool) error {
	if store.Flags == nil || store.FlagKey == "" {
		return nil
	}
	if err := store.Flags.Set(store.FlagKey, present); err != nil {
		return fmt.Errorf(flagUpdateErrorFormat, store.FlagKey, err)
	}
	return nil
}

// WithEnvironmentFallback serves the value of the named environment variable
// when the wrapped store holds no secret. Writes go to the wrapped store.
type WithEnvironmentFallback struct {
	Store
	Variable string
}

func (store WithEnvironmentFallback) Get() (string, bool) {
	if secret, found := store.Store.Get(); found {
		return secret, true
	}
	if store.Variable == "" {
		return "", false
	}
	value := strings.TrimSpace(os.Getenv(store.Variable))
	return value, value != ""
}

func (store WithEnvironmentFallback) Has() bool {
	_, found := store.Get()
	return found
}

// Memory is an in-process store.
type Memory struct {
	mutex  sync.Mutex
	secret string
}

func NewMemory(secret string) *Memory { return &Memory{secret: secret} }

func (store *Memory) Get() (string, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.secret, store.secret != ""
}

func (store *Memory) Has() bool {
	_, found := store.Get()
	return found
}

func (store *Memory) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New(emptySecretErrorMessage)
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.secret = secret
	return nil
}

func (store *Memory) Delete() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.secret = ""
	return nil
}
