package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
)

// errUsage reports a malformed command line.
var errUsage = errors.New("usage error")

type command struct {
	usage string
	run   func(ctx context.Context, app *application, args []string, out io.Writer) error
}

var commands = map[string]command{
	"info":        {usage: "print a catalog summary", run: runInfo},
	"services":    {usage: "list services, optionally filtered or ranked", run: runServices},
	"search":      {usage: "search services by title or description", run: runSearch},
	"add-service": {usage: "add a service to the catalog", run: runAddService},
	"categories":  {usage: "list categories", run: runCategories},
	"history":     {usage: "list recent search queries", run: runHistory},
	"register":    {usage: "create an account", run: runRegister},
	"issue-code":  {usage: "issue a verification code for an account", run: runIssueCode},
	"verify":      {usage: "verify an account with an issued code", run: runVerify},
	"request":     {usage: "order a service", run: runRequest},
	"review":      {usage: "review a service", run: runReview},
	"favorite":    {usage: "toggle a favorite service", run: runFavorite},
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: servicehub [-config file] <command> [flags]")
	fmt.Fprintln(w, "commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].usage)
	}
}

// runCommand dispatches args[0] to its command.
func runCommand(ctx context.Context, app *application, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		usage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(ctx, app, args[1:], out)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// credentials are the login flags shared by commands that act as a user.
type credentials struct {
	identifier *string
	password   *string
}

func addCredentials(fs *flag.FlagSet) credentials {
	return credentials{
		identifier: fs.String("login", "", "email or phone of the account"),
		password:   fs.String("password", "", "account password"),
	}
}

func (c credentials) login(ctx context.Context, app *application) error {
	if err := app.marketplace.Login(ctx, *c.identifier, *c.password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

func printServices(out io.Writer, services []domain.Service) {
	if len(services) == 0 {
		fmt.Fprintln(out, "no services")
		return
	}
	for _, s := range services {
		fmt.Fprintf(out, "%s  %s\n", s.ID, s.Info())
	}
}

func runInfo(_ context.Context, app *application, _ []string, out io.Writer) error {
	fmt.Fprintln(out, app.marketplace.CatalogFullInfo())
	return nil
}

func runServices(_ context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("services", out)
	category := fs.String("category", "", "only services in this category")
	minPrice := fs.Float64("min-price", -1, "lowest price, inclusive")
	maxPrice := fs.Float64("max-price", -1, "highest price, inclusive")
	minRating := fs.Float64("min-rating", -1, "lowest rating, inclusive")
	popular := fs.Int("popular", 0, "show the N highest rated services")
	newest := fs.Int("newest", 0, "show the N newest services")
	active := fs.Bool("active", false, "only active services")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	m := app.marketplace
	switch {
	case *popular > 0:
		printServices(out, m.PopularServices(*popular))
	case *newest > 0:
		printServices(out, m.NewServices(*newest))
	case *category != "":
		printServices(out, m.FilterByCategory(*category))
	case *minPrice >= 0 || *maxPrice >= 0:
		hi := *maxPrice
		if hi < 0 {
			hi = math.MaxFloat64
		}
		printServices(out, m.FilterByPrice(max(*minPrice, 0), hi))
	case *minRating >= 0:
		printServices(out, m.FilterByRating(*minRating))
	case *active:
		printServices(out, m.ActiveServices())
	default:
		printServices(out, m.Services())
	}
	return nil
}

func runSearch(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("search", out)
	inDescription := fs.Bool("description", false, "search descriptions instead of titles")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: search needs a query", errUsage)
	}

	if *inDescription {
		printServices(out, app.marketplace.SearchByDescription(ctx, query))
	} else {
		printServices(out, app.marketplace.SearchByName(ctx, query))
	}
	return nil
}

func runAddService(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("add-service", out)
	title := fs.String("title", "", "service title")
	description := fs.String("description", "", "service description")
	category := fs.String("category", "", "service category")
	price := fs.Float64("price", 0, "service price")
	provider := fs.String("provider", "", "provider user id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if strings.TrimSpace(*title) == "" {
		return fmt.Errorf("%w: -title is required", errUsage)
	}

	var providerID uuid.UUID
	if *provider != "" {
		id, err := domain.ParseID(*provider)
		if err != nil {
			return err
		}
		providerID = id
	}

	stored, err := app.marketplace.AddService(ctx, domain.Service{
		ProviderID:  providerID,
		Title:       strings.TrimSpace(*title),
		Description: *description,
		Category:    *category,
		Price:       *price,
		Active:      true,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, stored.ID)
	return nil
}

func runCategories(_ context.Context, app *application, _ []string, out io.Writer) error {
	for _, c := range app.marketplace.Categories() {
		fmt.Fprintln(out, c)
	}
	return nil
}

func runHistory(_ context.Context, app *application, _ []string, out io.Writer) error {
	for _, q := range app.marketplace.SearchHistory() {
		fmt.Fprintln(out, q)
	}
	return nil
}

func runRegister(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("register", out)
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "account phone")
	role := fs.Int("role", int(domain.RoleClient), "0 client, 1 provider, 2 admin")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if err := app.marketplace.Register(ctx, *email, *phone, domain.RoleFromIndex(*role), *password); err != nil {
		return err
	}

	session, _ := app.marketplace.CurrentSession()
	fmt.Fprintf(out, "%s  %s\n", session.UserID, session.RoleName())
	return nil
}

func runIssueCode(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("issue-code", out)
	creds := addCredentials(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := creds.login(ctx, app); err != nil {
		return err
	}

	code, err := app.marketplace.IssueVerificationCode(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, code)
	return nil
}

func runVerify(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("verify", out)
	creds := addCredentials(fs)
	code := fs.String("code", "", "verification code")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := creds.login(ctx, app); err != nil {
		return err
	}

	if err := app.marketplace.VerifyAccount(ctx, strings.TrimSpace(*code)); err != nil {
		return err
	}
	fmt.Fprintln(out, "verified")
	return nil
}

func runRequest(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("request", out)
	creds := addCredentials(fs)
	serviceID := fs.String("service", "", "service id")
	providerID := fs.String("provider", "", "provider user id")
	description := fs.String("description", "", "what is needed")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := creds.login(ctx, app); err != nil {
		return err
	}

	req, err := app.marketplace.CreateRequest(ctx, *serviceID, *providerID, *description)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, req.Info())
	return nil
}

func runReview(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("review", out)
	creds := addCredentials(fs)
	serviceID := fs.String("service", "", "service id")
	rating := fs.Int("rating", domain.MaxReviewRating, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	id, err := domain.ParseID(*serviceID)
	if err != nil {
		return err
	}
	if err := creds.login(ctx, app); err != nil {
		return err
	}

	review, err := app.marketplace.AddReview(ctx, id, *rating, *comment)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, review.Info())
	return nil
}

func runFavorite(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := newFlagSet("favorite", out)
	creds := addCredentials(fs)
	serviceID := fs.String("service", "", "service id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	id, err := domain.ParseID(*serviceID)
	if err != nil {
		return err
	}
	if err := creds.login(ctx, app); err != nil {
		return err
	}

	favorited, err := app.marketplace.ToggleFavoriteService(ctx, id)
	if err != nil {
		return err
	}
	if favorited {
		fmt.Fprintln(out, "added to favorites")
	} else {
		fmt.Fprintln(out, "removed from favorites")
	}
	return nil
}
