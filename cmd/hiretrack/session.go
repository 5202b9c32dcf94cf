package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/types"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Sign in, sign out and manage the profile",
}

var (
	loginReq    types.LoginRequest
	loginGoogle bool
	loginName   string
	registerReq types.RegisterRequest
	profileEdit types.ProfileUpdate
)

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		var (
			u   *types.User
			err error
		)
		if loginGoogle {
			u, err = e.app.LoginDistinguished(e.ctx, loginName, loginReq.Email)
		} else {
			u, err = e.app.Login(e.ctx, loginReq)
		}
		if err != nil {
			return err
		}
		return e.emit(u, func() { e.done("Signed in as %s <%s>", u.Name, u.Email) })
	}),
}

var sessionRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		u, err := e.app.Register(e.ctx, registerReq)
		if err != nil {
			return err
		}
		return e.emit(u, func() { e.done("Registered and signed in as %s <%s>", u.Name, u.Email) })
	}),
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		if err := e.app.Logout(e.ctx); err != nil {
			return err
		}
		e.done("Signed out")
		return nil
	}),
}

var sessionWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		u, ok, err := e.app.Session.User(e.ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("not signed in")
		}
		return e.emit(u, func() {
			kind := "backend"
			if u.IsDistinguished() {
				kind = "local only"
			}
			e.done("%s <%s> (%s, %s)", u.Name, u.Email, u.ID, kind)
		})
	}),
}

var sessionProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile, or update it when any field flag is given",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		var (
			u   *types.User
			err error
		)
		if profileEdit == (types.ProfileUpdate{}) {
			u, err = e.app.Profile(e.ctx)
		} else {
			u, err = e.app.UpdateProfile(e.ctx, profileEdit)
		}
		if err != nil {
			return err
		}
		return e.emit(u, func() {
			e.done("%s <%s>\ncompany: %s\nrole: %s\nphone: %s", u.Name, u.Email, u.Company, u.Role, u.Phone)
		})
	}),
}

func init() {
	f := sessionLoginCmd.Flags()
	f.StringVar(&loginReq.Email, "email", "", "Email")
	f.StringVar(&loginReq.Password, "password", "", "Password")
	f.BoolVar(&loginGoogle, "google", false, "Sign in as a Google user whose data stays local")
	f.StringVar(&loginName, "name", "", "Display name for --google")

	f = sessionRegisterCmd.Flags()
	f.StringVar(&registerReq.Name, "name", "", "Name")
	f.StringVar(&registerReq.Email, "email", "", "Email")
	f.StringVar(&registerReq.Password, "password", "", "Password, at least 8 characters")
	f.StringVar(&registerReq.Company, "company", "", "Company")
	f.StringVar(&registerReq.Role, "role", "", "Role")

	f = sessionProfileCmd.Flags()
	f.StringVar(&profileEdit.Name, "name", "", "New name")
	f.StringVar(&profileEdit.Company, "company", "", "New company")
	f.StringVar(&profileEdit.Role, "role", "", "New role")
	f.StringVar(&profileEdit.Phone, "phone", "", "New phone")

	sessionCmd.AddCommand(sessionLoginCmd, sessionRegisterCmd, sessionLogoutCmd, sessionWhoamiCmd, sessionProfileCmd)
	rootCmd.AddCommand(sessionCmd)
}
