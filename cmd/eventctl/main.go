package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"eventhub/internal/app"
	"eventhub/internal/config"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

const usage = `eventctl - event discovery and booking client

Usage: eventctl <command> [args]

Browsing:
  events                            list events
  events-by-category <categoryId>   list events in a category
  event <id>                        show one event
  categories                        list categories

Account:
  register <userName> <email> <password> <firstName> <lastName>
  login <email> <password>
  logout
  whoami

Bookings:
  book <eventId>
  bookings
  cancel <bookingId>

Administration:
  add-event -title T -category ID -date RFC3339 [-desc D] [-venue V] [-price P] [-image FILE]
  update-event <id> (same flags)
  delete-event <id> | archive-event <id>
  add-category <name>
  rename-category <id> <name>
  delete-category <id> | archive-category <id>
`

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	application, err := app.New(cfg)
	if err != nil {
		logger.Fatal("failed to build application", "error", err)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Restore is the only operation allowed to run automatically on startup.
	application.Session.Restore(ctx)

	if err := run(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", humanize(err))
		os.Exit(1)
	}
}

// humanize keeps CLI output readable for taxonomy errors.
func humanize(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return "you must log in first"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "this operation requires the Admin role"
	case errors.Is(err, apperrors.ErrAlreadyBooked):
		return "you have already booked this event"
	case errors.Is(err, apperrors.ErrAuthentication):
		return "invalid email or password"
	}
	return err.Error()
}

func run(ctx context.Context, a *app.App, command string, args []string) error {
	switch command {
	case "events":
		if err := a.Cache.Refresh(ctx); err != nil {
			return err
		}
		for _, e := range a.Cache.Events() {
			printEvent(a, e)
		}
		return nil

	case "events-by-category":
		if len(args) < 1 {
			return errors.New("usage: events-by-category <categoryId>")
		}
		if err := a.Cache.Refresh(ctx); err != nil {
			return err
		}
		for _, e := range a.Cache.Events() {
			if e.CategoryID == args[0] {
				printEvent(a, e)
			}
		}
		return nil

	case "event":
		if len(args) < 1 {
			return errors.New("usage: event <id>")
		}
		event, err := a.Cache.GetEvent(ctx, args[0])
		if err != nil {
			return err
		}
		printEvent(a, *event)
		fmt.Println(" ", event.Description)
		return nil

	case "categories":
		if err := a.Cache.Refresh(ctx); err != nil {
			return err
		}
		for _, c := range a.Cache.Categories() {
			fmt.Printf("%s  %s\n", c.ID, c.Name)
		}
		return nil

	case "register":
		if len(args) < 5 {
			return errors.New("usage: register <userName> <email> <password> <firstName> <lastName>")
		}
		sess, err := a.Session.Register(ctx, models.RegisterRequest{
			UserName:        args[0],
			Email:           args[1],
			Password:        args[2],
			ConfirmPassword: args[2],
			FirstName:       args[3],
			LastName:        args[4],
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered and logged in as %s\n", sess.User.UserName)
		return nil

	case "login":
		if len(args) < 2 {
			return errors.New("usage: login <email> <password>")
		}
		sess, err := a.Session.Login(ctx, models.LoginRequest{Email: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (roles: %v)\n", sess.User.UserName, sess.User.Roles)
		return nil

	case "logout":
		a.Session.Logout(ctx)
		a.Bookings.Reset()
		fmt.Println("logged out")
		return nil

	case "whoami":
		sess := a.Session.Current()
		if sess == nil {
			fmt.Println("anonymous")
			return nil
		}
		fmt.Printf("%s <%s> roles=%v\n", sess.User.UserName, sess.User.Email, sess.User.Roles)
		return nil

	case "book":
		if len(args) < 1 {
			return errors.New("usage: book <eventId>")
		}
		if err := a.Bookings.BookEvent(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("booked")
		return nil

	case "bookings":
		if err := a.Bookings.Load(ctx); err != nil {
			return err
		}
		for _, b := range a.Bookings.Bookings() {
			fmt.Printf("%s  %s  %s  %s\n", b.ID, b.EventTitle, b.EventDate.Format("2006-01-02 15:04"), b.EventVenue)
		}
		return nil

	case "cancel":
		if len(args) < 1 {
			return errors.New("usage: cancel <bookingId>")
		}
		if err := a.Bookings.Cancel(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("cancelled")
		return nil

	case "add-event":
		draft, err := eventDraftFlags("add-event", args)
		if err != nil {
			return err
		}
		event, err := a.Admin.AddEvent(ctx, *draft)
		if err != nil {
			return err
		}
		fmt.Println("created event", event.ID)
		return nil

	case "update-event":
		if len(args) < 1 {
			return errors.New("usage: update-event <id> [flags]")
		}
		draft, err := eventDraftFlags("update-event", args[1:])
		if err != nil {
			return err
		}
		return a.Admin.UpdateEvent(ctx, args[0], *draft)

	case "delete-event":
		if len(args) < 1 {
			return errors.New("usage: delete-event <id>")
		}
		return a.Admin.DeleteEvent(ctx, args[0])

	case "archive-event":
		if len(args) < 1 {
			return errors.New("usage: archive-event <id>")
		}
		return a.Admin.SoftDeleteEvent(ctx, args[0])

	case "add-category":
		if len(args) < 1 {
			return errors.New("usage: add-category <name>")
		}
		category, err := a.Admin.AddCategory(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println("created category", category.ID)
		return nil

	case "rename-category":
		if len(args) < 2 {
			return errors.New("usage: rename-category <id> <name>")
		}
		return a.Admin.UpdateCategory(ctx, args[0], args[1])

	case "delete-category":
		if len(args) < 1 {
			return errors.New("usage: delete-category <id>")
		}
		return a.Admin.DeleteCategory(ctx, args[0])

	case "archive-category":
		if len(args) < 1 {
			return errors.New("usage: archive-category <id>")
		}
		return a.Admin.SoftDeleteCategory(ctx, args[0])

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printEvent(a *app.App, e models.Event) {
	marker := " "
	if a.Bookings.IsBooked(e.ID) {
		marker = "*"
	}
	fmt.Printf("%s %s  %-30s  %s  %s  %.2f\n",
		marker, e.ID, e.Title, e.EventDate.Format("2006-01-02 15:04"), e.Venue, e.Price)
}

// eventDraftFlags parses the shared add/update event flag set.
func eventDraftFlags(name string, args []string) (*models.EventDraft, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	title := fs.String("title", "", "event title")
	desc := fs.String("desc", "", "event description")
	category := fs.String("category", "", "category id")
	date := fs.String("date", "", "event date, RFC3339")
	venue := fs.String("venue", "", "venue")
	price := fs.Float64("price", 0, "ticket price")
	image := fs.String("image", "", "image file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	draft := &models.EventDraft{
		Title:       *title,
		Description: *desc,
		CategoryID:  *category,
		Venue:       *venue,
		Price:       *price,
	}

	if *date != "" {
		parsed, err := time.Parse(time.RFC3339, *date)
		if err != nil {
			return nil, fmt.Errorf("invalid -date: %w", err)
		}
		draft.EventDate = parsed
	}

	if *image != "" {
		data, err := os.ReadFile(*image)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		draft.Image = &models.ImageUpload{Filename: *image, Data: data}
	}

	return draft, nil
}
