// Package biometric provides the device confirmation used for "fingerprint"
// login. A terminal has no fingerprint reader, so DeviceAuthenticator stands
// in with a device PIN: hardware is present when stdin is an interactive
// terminal, enrolment means a PIN verifier exists in the secure store, and
// authentication reads the PIN without echo.
package biometric

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophvote/internal/client/securestore"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/cryptox"
	"golang.org/x/term"
)

const (
	pinSaltKey     = "device_pin_salt"
	pinVerifierKey = "device_pin_verifier"
	minPINLength   = 4
)

var ErrWeakPIN = errors.New("pin must have at least 4 characters")

// Result is the outcome of a confirmation prompt.
type Result struct {
	Success bool
}

// Authenticator is the platform confirmation service.
type Authenticator interface {
	HasHardware(ctx context.Context) bool
	IsEnrolled(ctx context.Context) bool
	Authenticate(ctx context.Context, prompt string) (Result, error)
}

// batchStore writes several entries atomically.
type batchStore interface {
	SetAll(ctx context.Context, entries ...securestore.Entry) error
}

var _ batchStore = (*securestore.SealedStore)(nil)

// Seams for tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

type DeviceAuthenticator struct {
	store securestore.Store
	out   io.Writer
	fd    int
}

func NewDeviceAuthenticator(store securestore.Store, out io.Writer) *DeviceAuthenticator {
	return &DeviceAuthenticator{store: store, out: out, fd: int(os.Stdin.Fd())}
}

func (d *DeviceAuthenticator) HasHardware(context.Context) bool {
	return isTerminal(d.fd)
}

func (d *DeviceAuthenticator) IsEnrolled(ctx context.Context) bool {
	_, err := d.store.Get(ctx, pinVerifierKey)
	return err == nil
}

// Enroll stores a verifier for pin, replacing any previous one.
func (d *DeviceAuthenticator) Enroll(ctx context.Context, pin []byte) error {
	if len(pin) < minPINLength {
		return ErrWeakPIN
	}
	salt := common.GenerateRandByteArray(16)
	verifier := cryptox.MakeVerifier(cryptox.DeriveKey(pin, salt))

	if s, ok := d.store.(batchStore); ok {
		return s.SetAll(ctx,
			securestore.Entry{Key: pinSaltKey, Value: salt},
			securestore.Entry{Key: pinVerifierKey, Value: verifier},
		)
	}
	if err := d.store.Set(ctx, pinSaltKey, salt); err != nil {
		return err
	}
	return d.store.Set(ctx, pinVerifierKey, verifier)
}

// Authenticate prompts for the PIN and compares it with the enrolled
// verifier. A mismatch is reported as Result{Success: false}, not an error.
func (d *DeviceAuthenticator) Authenticate(ctx context.Context, prompt string) (Result, error) {
	salt, err := d.store.Get(ctx, pinSaltKey)
	if err != nil {
		return Result{}, fmt.Errorf("read pin salt: %w", err)
	}
	want, err := d.store.Get(ctx, pinVerifierKey)
	if err != nil {
		return Result{}, fmt.Errorf("read pin verifier: %w", err)
	}

	fmt.Fprintf(d.out, "%s\nPIN: ", prompt)
	pin, err := readPassword(d.fd)
	fmt.Fprintln(d.out)
	if err != nil {
		return Result{}, err
	}
	defer common.WipeByteArray(pin)

	got := cryptox.MakeVerifier(cryptox.DeriveKey(pin, salt))
	return Result{Success: subtle.ConstantTimeCompare(got, want) == 1}, nil
}
