// Command ojacli exercises the Oja client SDK from a terminal: register,
// verify the OTP, log in, inspect the profile and deals. It is a thin shell
// over the services; all behavior lives in internal/.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AllStackDev1/oja-client/domain"
	"github.com/AllStackDev1/oja-client/internal/app"
	"github.com/AllStackDev1/oja-client/internal/config"
)

// stderrSink prints service notifications as they happen.
type stderrSink struct{}

func (stderrSink) Notify(n domain.Notification) {
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", n.Status, n.Title, n.Description)
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yml", "path to the yaml config file")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	defer container.Close()
	container.SetNotifier(stderrSink{})

	ctx := context.Background()
	if err := run(ctx, container, flag.Args()); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, c *app.Container, args []string) error {
	switch args[0] {
	case "register":
		return register(ctx, c, args[1:])
	case "verify-otp":
		return verifyOTP(ctx, c, args[1:])
	case "resend-otp":
		return resendOTP(ctx, c, args[1:])
	case "login":
		return login(ctx, c, args[1:])
	case "logout":
		c.AuthSvc.Logout(ctx)
		return nil
	case "whoami":
		return whoami(ctx, c)
	case "deals":
		return deals(ctx, c)
	case "currencies":
		return currencies(ctx, c)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func register(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number in E.164 form")
	password := fs.String("password", "", "password")
	country := fs.String("country", "", "country of residence")
	fs.Parse(args)

	result, err := c.AuthSvc.Register(ctx, &domain.RegisterPayload{
		FirstName:   *firstName,
		LastName:    *lastName,
		Username:    *username,
		Email:       *email,
		PhoneNumber: *phone,
		Password:    *password,
		Address:     domain.Address{Country: *country},
	})
	if err != nil {
		return err
	}

	token := domain.PendingRegistration{PhoneNumber: result.PhoneNumber, PinID: result.PinID}.Encode()
	fmt.Printf("registration pending for %s\npending token: %s\n", result.PhoneNumber, token)
	return nil
}

func verifyOTP(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("verify-otp", flag.ExitOnError)
	token := fs.String("token", "", "pending registration token printed by register")
	code := fs.String("code", "", "otp code received by sms")
	remember := fs.Bool("remember", false, "keep the session for 60 days")
	fs.Parse(args)

	pending, err := domain.DecodePendingRegistration(*token)
	if err != nil {
		return err
	}

	c.AuthSvc.SetRememberMe(*remember)
	session, err := c.AuthSvc.VerifyOTP(ctx, domain.OtpChallenge{Code: *code, PinID: pending.PinID})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s %s\n", session.User.FirstName, session.User.LastName)
	return nil
}

func resendOTP(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("resend-otp", flag.ExitOnError)
	token := fs.String("token", "", "pending registration token printed by register")
	fs.Parse(args)

	pending, err := domain.DecodePendingRegistration(*token)
	if err != nil {
		return err
	}

	result, err := c.AuthSvc.ResendOTP(ctx, pending.PhoneNumber)
	if err != nil {
		return err
	}

	refreshed := domain.PendingRegistration{PhoneNumber: pending.PhoneNumber, PinID: result.PinID}.Encode()
	fmt.Printf("new pending token: %s\n", refreshed)
	return nil
}

func login(ctx context.Context, c *app.Container, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	remember := fs.Bool("remember", false, "keep the session for 60 days")
	fs.Parse(args)

	c.AuthSvc.SetRememberMe(*remember)
	result, err := c.AuthSvc.Login(ctx, domain.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	if result.RequiresChallenge() {
		token := result.Challenge.Encode()
		fmt.Printf("otp required, sent to %s\npending token: %s\n", result.Challenge.PhoneNumber, token)
		return nil
	}
	fmt.Printf("signed in as %s %s\n", result.Session.User.FirstName, result.Session.User.LastName)
	return nil
}

func whoami(ctx context.Context, c *app.Container) error {
	if !c.AuthSvc.IsAuthenticated().IsLive() {
		fmt.Println("not signed in")
		return nil
	}

	user, err := c.AuthSvc.Profile(ctx)
	if err != nil {
		return err
	}
	return printJSON(user)
}

func deals(ctx context.Context, c *app.Container) error {
	if !c.AuthSvc.IsAuthenticated().IsLive() {
		return fmt.Errorf("not signed in, run ojacli login first")
	}
	list, err := c.DealSvc.List(ctx, nil)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func currencies(ctx context.Context, c *app.Container) error {
	list, err := c.UserSvc.Currencies(ctx, nil)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func usage() {
	commands := []string{
		"register", "verify-otp", "resend-otp", "login", "logout",
		"whoami", "deals", "currencies",
	}
	fmt.Fprintf(os.Stderr, "usage: ojacli [-config path] <%s> [flags]\n", strings.Join(commands, "|"))
}
