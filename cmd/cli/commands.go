package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/Domenick1991/airbooking-storefront/internal/session"
	"github.com/sirupsen/logrus"
)

type env struct {
	ctx    context.Context
	client *apiclient.Client
	out    io.Writer
}

type command struct {
	usage string
	run   func(e *env, args []string) error
}

var commands = map[string]command{
	"register":         {"-email E -password P [-first F -last L]", register},
	"login":            {"-email E -password P", login},
	"logout":           {"", logout},
	"whoami":           {"", whoami},
	"search":           {"[-from JFK -to LHR -date 2026-12-24 -passengers 2]", search},
	"flight":           {"<flight id>", flight},
	"book":             {"-flight ID -passengers N -card-number ... -card-expiry MM/YY -card-cvc CVC -card-name NAME", book},
	"booking":          {"<booking id>", booking},
	"bookings":         {"", bookings},
	"cancel":           {"<booking id>", cancel},
	"profile":          {"[-username U -first F -last L -phone P -picture URL]", profile},
	"favourites":       {"", favourites},
	"favourite-add":    {"<flight id>", favouriteAdd},
	"favourite-remove": {"<favourite id>", favouriteRemove},
	"alerts":           {"", alerts},
	"alert-add":        {"[-from JFK -to LHR -date 2026-12-24 -max-price 300 -email]", alertAdd},
	"alert-remove":     {"<alert id>", alertRemove},
}

// run parses global flags, opens the local credential store and dispatches
// to one command.
func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("storefront", flag.ContinueOnError)
	global.SetOutput(out)
	cfgPath := global.String("config", os.Getenv("CONFIG_PATH"), "Optional config file")
	server := global.String("server", "", "Override booking API base URL (e.g. https://api.example.com/api)")
	store := global.String("store", "", "Override the credential database path")
	verbose := global.Bool("v", false, "Log requests")
	global.Usage = func() { printUsage(global) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		printUsage(global)
		return flag.ErrHelp
	}
	cmd, ok := commands[global.Arg(0)]
	if !ok {
		printUsage(global)
		return fmt.Errorf("unknown command %q", global.Arg(0))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.LoadConfig(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	baseURL := cfg.API.BaseURL
	if *server != "" {
		baseURL = strings.TrimRight(*server, "/")
	}
	storePath := cfg.Session.SQLitePath
	if *store != "" {
		storePath = *store
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if dir := filepath.Dir(storePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credential directory: %w", err)
		}
	}
	credentials, err := session.OpenSQLiteStore(storePath)
	if err != nil {
		return err
	}
	defer credentials.Close()

	client, err := apiclient.New(baseURL, credentials,
		apiclient.WithTimeout(cfg.API.Timeout()),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return cmd.run(&env{ctx: ctx, client: client, out: out}, global.Args()[1:])
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: storefront [global flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-17s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(w, "\nglobal flags:")
	fs.PrintDefaults()
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlags(name string, e *env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.out)
	return fs
}

func oneArg(name string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%s: expected exactly one id", name)
	}
	return args[0], nil
}

func register(e *env, args []string) error {
	fs := newFlags("register", e)
	var in domain.Registration
	fs.StringVar(&in.Email, "email", "", "Email")
	fs.StringVar(&in.Password, "password", "", "Password")
	fs.StringVar(&in.FirstName, "first", "", "First name")
	fs.StringVar(&in.LastName, "last", "", "Last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Email == "" || in.Password == "" {
		return errors.New("register: -email and -password are required")
	}

	res, err := e.client.Auth.Register(e.ctx, in)
	if err != nil {
		return err
	}
	return e.print(res)
}

func login(e *env, args []string) error {
	fs := newFlags("login", e)
	var in domain.Credentials
	fs.StringVar(&in.Email, "email", "", "Email")
	fs.StringVar(&in.Password, "password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Email == "" || in.Password == "" {
		return errors.New("login: -email and -password are required")
	}

	res, err := e.client.Auth.Login(e.ctx, in)
	if err != nil {
		return err
	}
	return e.print(map[string]any{"authenticated": true, "message": res.Message, "user": res.User})
}

func logout(e *env, _ []string) error {
	if err := e.client.Auth.Logout(e.ctx); err != nil {
		return err
	}
	return e.print(map[string]any{"authenticated": false})
}

func whoami(e *env, _ []string) error {
	ok, err := e.client.Auth.IsAuthenticated(e.ctx)
	if err != nil {
		return err
	}
	if !ok {
		return apiclient.ErrNotAuthenticated
	}
	profile, err := e.client.Account.Profile(e.ctx)
	if err != nil {
		return err
	}
	return e.print(profile)
}

func search(e *env, args []string) error {
	fs := newFlags("search", e)
	var q apiclient.SearchQuery
	fs.StringVar(&q.DepartureAirport, "from", "", "Departure airport")
	fs.StringVar(&q.ArrivalAirport, "to", "", "Arrival airport")
	fs.StringVar(&q.DepartureDate, "date", "", "Departure date (YYYY-MM-DD)")
	fs.IntVar(&q.Passengers, "passengers", 0, "Minimum free seats")
	if err := fs.Parse(args); err != nil {
		return err
	}

	flights, err := e.client.Flights.Search(e.ctx, q.Values())
	if err != nil {
		return err
	}
	return e.print(flights)
}

func flight(e *env, args []string) error {
	id, err := oneArg("flight", args)
	if err != nil {
		return err
	}
	f, err := e.client.Flights.Get(e.ctx, id)
	if err != nil {
		return err
	}
	return e.print(f)
}

func book(e *env, args []string) error {
	fs := newFlags("book", e)
	flightID := fs.String("flight", "", "Flight id")
	passengers := fs.Int("passengers", 1, "Number of passengers")
	var pay domain.PaymentDetails
	fs.StringVar(&pay.CardNumber, "card-number", "", "Card number")
	fs.StringVar(&pay.CardExpiry, "card-expiry", "", "Card expiry (MM/YY)")
	fs.StringVar(&pay.CardCVC, "card-cvc", "", "Card CVC")
	fs.StringVar(&pay.CardName, "card-name", "", "Name on card")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *flightID == "" {
		return errors.New("book: -flight is required")
	}
	if *passengers < 1 {
		return errors.New("book: -passengers must be at least 1")
	}

	f, err := e.client.Flights.Get(e.ctx, *flightID)
	if err != nil {
		return err
	}
	b, err := e.client.Bookings.Create(e.ctx, domain.BookingInput{
		FlightID:       f.ID,
		SeatsBooked:    *passengers,
		PaymentDetails: pay,
		TotalPrice:     f.ReducedPrice * float64(*passengers),
	})
	if err != nil {
		return err
	}
	return e.print(b)
}

func booking(e *env, args []string) error {
	id, err := oneArg("booking", args)
	if err != nil {
		return err
	}
	b, err := e.client.Bookings.Get(e.ctx, id)
	if err != nil {
		return err
	}
	return e.print(b)
}

func bookings(e *env, _ []string) error {
	list, err := e.client.Bookings.List(e.ctx)
	if err != nil {
		return err
	}
	return e.print(list)
}

func cancel(e *env, args []string) error {
	id, err := oneArg("cancel", args)
	if err != nil {
		return err
	}
	b, err := e.client.Bookings.Cancel(e.ctx, id)
	if err != nil {
		return err
	}
	return e.print(b)
}

// profile prints the profile, or updates it when any field flag is given.
func profile(e *env, args []string) error {
	fs := newFlags("profile", e)
	fields := map[string]*string{
		"username": fs.String("username", "", "Username"),
		"first":    fs.String("first", "", "First name"),
		"last":     fs.String("last", "", "Last name"),
		"phone":    fs.String("phone", "", "Phone number"),
		"picture":  fs.String("picture", "", "Profile picture URL"),
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var upd domain.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		v := fields[f.Name]
		switch f.Name {
		case "username":
			upd.Username = v
		case "first":
			upd.FirstName = v
		case "last":
			upd.LastName = v
		case "phone":
			upd.PhoneNumber = v
		case "picture":
			upd.ProfilePictureURL = v
		}
	})

	var p *domain.Profile
	var err error
	if upd.Empty() {
		p, err = e.client.Account.Profile(e.ctx)
	} else {
		p, err = e.client.Account.UpdateProfile(e.ctx, upd)
	}
	if err != nil {
		return err
	}
	return e.print(p)
}

func favourites(e *env, _ []string) error {
	list, err := e.client.Account.Favourites(e.ctx)
	if err != nil {
		return err
	}
	return e.print(list)
}

func favouriteAdd(e *env, args []string) error {
	id, err := oneArg("favourite-add", args)
	if err != nil {
		return err
	}
	fav, err := e.client.Account.AddFavourite(e.ctx, id)
	if err != nil {
		return err
	}
	return e.print(fav)
}

func favouriteRemove(e *env, args []string) error {
	id, err := oneArg("favourite-remove", args)
	if err != nil {
		return err
	}
	if err := e.client.Account.RemoveFavourite(e.ctx, id); err != nil {
		return err
	}
	return e.print(map[string]any{"removed": id})
}

func alerts(e *env, _ []string) error {
	list, err := e.client.Account.Alerts(e.ctx)
	if err != nil {
		return err
	}
	return e.print(list)
}

func alertAdd(e *env, args []string) error {
	fs := newFlags("alert-add", e)
	from := fs.String("from", "", "Departure airport")
	to := fs.String("to", "", "Arrival airport")
	date := fs.String("date", "", "Departure date (YYYY-MM-DD)")
	maxPrice := fs.Float64("max-price", 0, "Notify when the fare drops below this")
	notify := fs.Bool("email", false, "Send email notifications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := domain.AlertCriteria{}
	if *from != "" {
		criteria["departure_airport"] = *from
	}
	if *to != "" {
		criteria["arrival_airport"] = *to
	}
	if *date != "" {
		criteria["departure_date"] = *date
	}
	if *maxPrice > 0 {
		criteria["max_price"] = *maxPrice
	}
	if len(criteria) == 0 {
		return errors.New("alert-add: at least one criterion is required")
	}

	alert, err := e.client.Account.CreateAlert(e.ctx, domain.AlertInput{Criteria: criteria, EmailNotifications: *notify})
	if err != nil {
		return err
	}
	return e.print(alert)
}

func alertRemove(e *env, args []string) error {
	id, err := oneArg("alert-remove", args)
	if err != nil {
		return err
	}
	if err := e.client.Account.DeleteAlert(e.ctx, id); err != nil {
		return err
	}
	return e.print(map[string]any{"removed": id})
}
