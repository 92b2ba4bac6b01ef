package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/notely/internal/common"
)

// Input helpers are indirections so tests can script the prompts.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for name, email and password and creates an account.
// On success the new session is saved.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.user = u
	printlnFn("Registered and logged in as", u.Email)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.user = u
	printlnFn("Logged in as", u.Email)
	return nil
}

// Logout revokes the current token and forgets it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	printlnFn("Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u
	printlnFn(u.String())
	return nil
}

// EditProfile prompts for a new name and email; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name (empty keeps \""+u.Name+"\")", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (empty keeps \""+u.Email+"\")", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = u.Name
	}
	if email == "" {
		email = u.Email
	}

	updated, err := a.authService.UpdateProfile(ctx, name, email)
	if err != nil {
		return err
	}

	a.user = updated
	printlnFn("Profile updated:", updated.String())
	return nil
}

// Upload sends the image file named in args as the profile picture.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("upload <file>")
	}

	url, err := a.authService.UploadPicture(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	printlnFn("Profile picture uploaded:", url)
	return nil
}
