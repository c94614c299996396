// Package setup provisions the site accounts. An existing account with the
// same username gets the new password, so it is safe to run again to rotate
// a password.
package setup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"golang.org/x/term"
)

// Account is one login the site needs. EnvVar, when set in the environment,
// supplies the password without prompting.
type Account struct {
	UserName string
	Role     models.Role
	EnvVar   string
}

var DefaultAccounts = []Account{
	{UserName: "admin", Role: models.RoleAdmin, EnvVar: "ROBOTIKA_ADMIN_PASSWORD"},
	{UserName: "mesuese", Role: models.RoleTeacher, EnvVar: "ROBOTIKA_TEACHER_PASSWORD"},
}

// MinPasswordLength is the shortest password setup accepts.
const MinPasswordLength = 12

var ErrPasswordMismatch = errors.New("passwords do not match")

type UserCreator interface {
	CreateOrReplaceUser(ctx context.Context, userName string, password []byte, role models.Role) (*models.User, error)
}

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Prompter reads passwords from the terminal without echo.
type Prompter struct {
	Out io.Writer
	Fd  int
}

func NewTerminalPrompter() *Prompter {
	return &Prompter{Out: os.Stderr, Fd: int(os.Stdin.Fd())}
}

func (p *Prompter) read(prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(p.Out, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(p.Fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// Password asks twice and returns the password only when both entries match.
// The returned slice should be wiped by the caller.
func (p *Prompter) Password(userName string) ([]byte, error) {
	first, err := p.read(fmt.Sprintf("Password for %s: ", userName))
	if err != nil {
		return nil, err
	}
	second, err := p.read("Repeat password: ")
	if err != nil {
		common.WipeByteArray(first)
		return nil, err
	}
	defer common.WipeByteArray(second)

	if !bytes.Equal(first, second) {
		common.WipeByteArray(first)
		return nil, ErrPasswordMismatch
	}
	return first, nil
}

type PasswordPrompter interface {
	Password(userName string) ([]byte, error)
}

// Runner creates every account in Accounts.
type Runner struct {
	Users    UserCreator
	Prompter PasswordPrompter
	Lookup   func(string) (string, bool)
	Logger   logging.Logger
	Accounts []Account
}

func (r *Runner) password(a Account) ([]byte, error) {
	if a.EnvVar != "" && r.Lookup != nil {
		if v, ok := r.Lookup(a.EnvVar); ok && v != "" {
			return []byte(v), nil
		}
	}
	if r.Prompter == nil {
		return nil, fmt.Errorf("no password for %s: set %s", a.UserName, a.EnvVar)
	}
	return r.Prompter.Password(a.UserName)
}

func (r *Runner) Run(ctx context.Context) error {
	l := r.Logger
	if l == nil {
		l = logging.Nop{}
	}

	for _, a := range r.Accounts {
		pw, err := r.password(a)
		if err != nil {
			return fmt.Errorf("%s: %w", a.UserName, err)
		}
		if len(pw) < MinPasswordLength {
			common.WipeByteArray(pw)
			return fmt.Errorf("%s: password must be at least %d characters", a.UserName, MinPasswordLength)
		}

		u, err := r.Users.CreateOrReplaceUser(ctx, a.UserName, pw, a.Role)
		common.WipeByteArray(pw)
		if err != nil {
			return fmt.Errorf("%s: %w", a.UserName, err)
		}

		l.Info(ctx, "account ready", "username", u.UserName, "role", string(u.Role), "id", u.ID)
	}
	return nil
}

// GenerateSecret returns a random hex signing secret long enough for the
// server's minimum.
func GenerateSecret() (string, error) {
	return common.MakeRandHexString(32)
}
