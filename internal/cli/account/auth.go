package account

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindfulpath/internal/cli"
)

type AuthCmd struct {
	Login   LoginCmd   `cmd:"" help:"Sign in with email and password."`
	Signup  SignupCmd  `cmd:"" help:"Create an account."`
	Logout  LogoutCmd  `cmd:"" help:"Sign out and forget stored tokens."`
	Whoami  WhoamiCmd  `cmd:"" help:"Show the signed-in user."`
	Profile ProfileCmd `cmd:"" help:"Show the account profile."`
}

// promptPassword asks for a password without echo; replaced in tests.
var promptPassword = func(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	return password, err
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Password (prompted when omitted)." env:"MINDFULPATH_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Password"); err != nil {
			return err
		}
	}
	session, err := ctx.Integrations.Auth.SignIn(context.Background(), c.Email, password)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Signed in as %s\n", session.User.Email)
	return nil
}

type SignupCmd struct {
	Email    string `arg:"" help:"Account email."`
	Name     string `short:"n" help:"Full name."`
	Password string `help:"Password (prompted when omitted)." env:"MINDFULPATH_PASSWORD"`
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Choose a password"); err != nil {
			return err
		}
	}
	session, err := ctx.Integrations.Auth.SignUp(context.Background(), c.Email, password, c.Name)
	if err != nil {
		return err
	}
	if session.AccessToken == "" {
		ctx.Printf("✓ Account created for %s. Check your email to confirm it, then run 'mindfulpath auth login'.\n", c.Email)
		return nil
	}
	ctx.Printf("✓ Account created and signed in as %s\n", session.User.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Integrations.Auth.SignOut(context.Background()); err != nil {
		return err
	}
	ctx.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Integrations.Auth.CurrentUser(context.Background())
	if err != nil {
		return err
	}
	if user.FullName != "" {
		ctx.Printf("%s <%s>\n", user.FullName, user.Email)
	} else {
		ctx.Println(user.Email)
	}
	ctx.Printf("ID: %s\n", user.ID)
	return nil
}

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Integrations.Auth.Profile(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	ctx.Printf("ID:        %s\n", p.ID)
	ctx.Printf("Email:     %s\n", p.Email)
	if p.FullName != "" {
		ctx.Printf("Name:      %s\n", p.FullName)
	}
	if p.AvatarURL != "" {
		ctx.Printf("Avatar:    %s\n", p.AvatarURL)
	}
	if p.Preferences != nil {
		ctx.Printf("Theme:     %s\n", p.Preferences.Theme)
		ctx.Printf("Language:  %s\n", p.Preferences.Language)
		ctx.Printf("Notify:    %t\n", p.Preferences.Notifications)
	}
	return nil
}
