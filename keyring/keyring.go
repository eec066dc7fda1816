// Package keyring provides secure storage for speech and language model
// API keys. It uses the system keyring when available, falling back to
// an encrypted local file when not.
package keyring

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yllada/voice-intelligence/common"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "voice-intelligence"

	// demoAccount marks the stored keys as shared demo keys.
	demoAccount = "demo-marker"

	probeAccount = "voice-intelligence-test-init"
)

// Provider names an external API whose key is stored.
type Provider string

// Known providers.
const (
	ProviderDeepgram  Provider = "deepgram"
	ProviderAnthropic Provider = "anthropic"
)

// Providers returns every provider a complete key set needs.
func Providers() []Provider {
	return []Provider{ProviderDeepgram, ProviderAnthropic}
}

// ParseProvider validates a provider name.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Providers() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownProvider, name)
}

// KeyStatus summarizes the stored keys for the content view.
type KeyStatus struct {
	HasValidKeys      bool `json:"hasValidKeys"`
	RemainingRequests int  `json:"remainingRequests"`
	IsDemo            bool `json:"isDemo"`
}

// backend is a secret store addressed by account name.
type backend interface {
	get(account string) (string, error)
	set(account, secret string) error
	delete(account string) error
}

// Keyring stores API keys per provider.
type Keyring struct {
	mu      sync.Mutex
	backend backend
	log     common.Logger
}

// Options configures New.
type Options struct {
	// Dir holds the encrypted fallback file. Empty means the config dir.
	Dir string
	// ForceFile skips the system keyring.
	ForceFile bool
	Logger    common.Logger
}

// New probes the system keyring and falls back to an encrypted file when
// the probe fails.
func New(opts Options) (*Keyring, error) {
	log := opts.Logger
	if log == nil {
		log = common.NopLogger{}
	}

	if !opts.ForceFile {
		err := keyring.Set(serviceName, probeAccount, "test")
		if err == nil {
			keyring.Delete(serviceName, probeAccount)
			log.Debug("Using system keyring for credentials")
			return &Keyring{backend: systemBackend{}, log: log}, nil
		}
		log.Warn("System keyring unavailable, using encrypted file: %v", err)
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = common.GetConfigDir(); err != nil {
			return nil, err
		}
	}
	fb, err := newFileBackend(filepath.Join(dir, common.CredentialsFileName), deriveKey())
	if err != nil {
		return nil, err
	}
	return &Keyring{backend: fb, log: log}, nil
}

// Store saves the API key for a provider.
func (k *Keyring) Store(p Provider, secret string) error {
	if _, err := ParseProvider(string(p)); err != nil {
		return err
	}
	if secret == "" {
		return errors.New("api key cannot be empty")
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.backend.set(string(p), secret); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCredentialStore, err)
	}
	return nil
}

// Get retrieves the API key for a provider.
func (k *Keyring) Get(p Provider) (string, error) {
	if _, err := ParseProvider(string(p)); err != nil {
		return "", err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.backend.get(string(p))
}

// Delete removes the API key for a provider. Deleting a missing key is
// not an error.
func (k *Keyring) Delete(p Provider) error {
	if _, err := ParseProvider(string(p)); err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.backend.delete(string(p)); err != nil && !errors.Is(err, common.ErrKeyNotFound) {
		return err
	}
	return nil
}

// Exists reports whether a key is stored for the provider.
func (k *Keyring) Exists(p Provider) bool {
	_, err := k.Get(p)
	return err == nil
}

// MarkDemo flags the stored keys as demo keys, subject to the request limit.
func (k *Keyring) MarkDemo(demo bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !demo {
		if err := k.backend.delete(demoAccount); err != nil && !errors.Is(err, common.ErrKeyNotFound) {
			return err
		}
		return nil
	}
	return k.backend.set(demoAccount, "1")
}

// IsDemo reports whether the stored keys are demo keys.
func (k *Keyring) IsDemo() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, err := k.backend.get(demoAccount)
	return err == nil
}

// Status reports key availability given the number of requests already
// made. RemainingRequests is -1 for user-supplied keys.
func (k *Keyring) Status(requestCount int) KeyStatus {
	status := KeyStatus{HasValidKeys: true, RemainingRequests: -1, IsDemo: k.IsDemo()}
	for _, p := range Providers() {
		if !k.Exists(p) {
			status.HasValidKeys = false
		}
	}
	if status.IsDemo {
		status.RemainingRequests = common.DemoRequestLimit - requestCount
		if status.RemainingRequests <= 0 {
			status.RemainingRequests = 0
			status.HasValidKeys = false
		}
	}
	return status
}

// Destroy removes every provider key and the demo marker. It runs once the
// demo request limit is used up.
func (k *Keyring) Destroy() error {
	var errs []error
	for _, p := range Providers() {
		if err := k.Delete(p); err != nil {
			errs = append(errs, err)
		}
	}
	if err := k.MarkDemo(false); err != nil {
		errs = append(errs, err)
	}
	k.log.Info("Demo keys removed")
	return errors.Join(errs...)
}

// systemBackend stores secrets in the desktop keyring.
type systemBackend struct{}

func (systemBackend) get(account string) (string, error) {
	secret, err := keyring.Get(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", common.ErrKeyNotFound
	}
	return secret, err
}

func (systemBackend) set(account, secret string) error {
	return keyring.Set(serviceName, account, secret)
}

func (systemBackend) delete(account string) error {
	err := keyring.Delete(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return common.ErrKeyNotFound
	}
	return err
}

// fileBackend keeps secrets in a XChaCha20-Poly1305 encrypted JSON map.
type fileBackend struct {
	path    string
	key     []byte
	secrets map[string]string
}

func newFileBackend(path string, key []byte) (*fileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCredentialStore, err)
	}
	fb := &fileBackend{path: path, key: key, secrets: make(map[string]string)}
	if err := fb.load(); err != nil {
		return nil, err
	}
	return fb, nil
}

func (f *fileBackend) load() error {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCredentialStore, err)
	}
	plain, err := decrypt(f.key, data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plain, &f.secrets); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return nil
}

func (f *fileBackend) save() error {
	data, err := json.Marshal(f.secrets)
	if err != nil {
		return err
	}
	sealed, err := encrypt(f.key, data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, sealed, 0600)
}

func (f *fileBackend) get(account string) (string, error) {
	secret, ok := f.secrets[account]
	if !ok {
		return "", common.ErrKeyNotFound
	}
	return secret, nil
}

func (f *fileBackend) set(account, secret string) error {
	f.secrets[account] = secret
	return f.save()
}

func (f *fileBackend) delete(account string) error {
	if _, ok := f.secrets[account]; !ok {
		return common.ErrKeyNotFound
	}
	delete(f.secrets, account)
	return f.save()
}

// deriveKey builds the file key from machine-specific data.
func deriveKey() []byte {
	hostname, _ := os.Hostname()
	keyData := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, getMachineID(), os.Getuid())
	hash := sha256.Sum256([]byte(keyData))
	return hash[:]
}

func getMachineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

func encrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(sealed)), nil
}

func decrypt(key, data []byte) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", common.ErrDecryption)
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return plain, nil
}
