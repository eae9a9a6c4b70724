package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

var ErrUsage = errors.New("usage: client [-a url] [-t seconds] [-c config] register|get [flags]")

// Client is the subset of the HTTP client used by the commands.
type Client interface {
	Register(ctx context.Context, reg client.Registration, pictureName string, picture io.Reader) (*client.Profile, error)
	GetUser(ctx context.Context, userID int64) (*client.Profile, error)
}

type App struct {
	client Client
	in     io.Reader
	out    io.Writer
}

// NewApp reads interactive input from os.Stdin and writes to out.
func NewApp(c Client, out io.Writer) *App {
	return &App{client: c, in: os.Stdin, out: out}
}

// Run dispatches args[0] to the matching command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "get":
		return a.get(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	picture := fs.String("picture", "", "path to the profile picture")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" || *phone == "" || *picture == "" {
		return errors.New("register: -name, -email, -phone and -picture are required")
	}

	f, err := os.Open(*picture)
	if err != nil {
		return fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()

	var pw []byte
	if *password != "" {
		pw = []byte(*password)
	} else {
		pw, err = promptPassword(a.in, a.out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}
	defer common.WipeByteArray(pw)

	p, err := a.client.Register(ctx, client.Registration{
		FullName: *name,
		Email:    *email,
		Password: pw,
		Phone:    *phone,
	}, filepath.Base(*picture), f)
	if err != nil {
		if client.IsConflict(err) {
			return fmt.Errorf("registration rejected: %w", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Registered user %d\n", p.UserID)
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.Int64("id", 0, "user id")
	out := fs.String("out", "", "write the picture to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id <= 0 {
		return errors.New("get: -id must be a positive integer")
	}

	p, err := a.client.GetUser(ctx, *id)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("user %d does not exist", *id)
		}
		return err
	}

	if *out != "" {
		if p.Picture == nil {
			fmt.Fprintln(a.out, "No picture stored for this user")
		} else if err := os.WriteFile(*out, p.Picture, 0o600); err != nil {
			return fmt.Errorf("write picture: %w", err)
		}
		p.Picture = nil
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
