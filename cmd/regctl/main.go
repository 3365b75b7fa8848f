// regctl is a small admin tool that talks to a hosted registrations API:
// it lists an event's registrations with summary counts, submits test
// registrations, and flags confirmation emails as sent.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/voxxy-presents/presents-api/internal/apiclient"
	"github.com/voxxy-presents/presents-api/internal/config"
	"github.com/voxxy-presents/presents-api/internal/model"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg := config.Load()
	baseURL := flag.String("api", cfg.APIBaseURL, "base URL of the registrations API")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	client := apiclient.New(*baseURL, cfg.RequestTimeout, log)
	ctx := context.Background()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "list":
		err = runList(ctx, client, flag.Arg(1))
	case "register":
		err = runRegister(ctx, client, flag.Args()[1:])
	case "email-sent":
		err = runEmailSent(ctx, client, flag.Arg(1))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  regctl [-api URL] list <event-id>
  regctl [-api URL] register <event-id> <type> <name> [email]
  regctl [-api URL] email-sent <registration-id>`)
}

func runList(ctx context.Context, client *apiclient.Client, eventID string) error {
	if eventID == "" {
		return fmt.Errorf("list: event id is required")
	}

	regs, err := client.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tTYPE\tPOSITION\tREGISTERED")
	for _, r := range regs {
		position := ""
		if r.WaitlistPosition > 0 {
			position = fmt.Sprintf("%d", r.WaitlistPosition)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Email, r.RegistrationType.Label(), position,
			r.CreatedAt.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := model.Summarize(regs)
	fmt.Printf("\n%d total: %d yes, %d maybe, %d presale, %d waitlisted\n",
		s.Total, s.RSVPYes, s.RSVPMaybe, s.PresaleRequests, s.Waitlist)
	return nil
}

func runRegister(ctx context.Context, client *apiclient.Client, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("register: event id, type, and name are required")
	}

	req := model.CreateRegistrationRequest{
		EventID:          args[0],
		RegistrationType: model.RegistrationType(args[1]),
		Name:             args[2],
	}
	if len(args) > 3 {
		req.Email = args[3]
	}

	reg, err := client.CreateRegistration(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (%s) id=%s", reg.Name, reg.RegistrationType.Label(), reg.ID)
	if reg.WaitlistPosition > 0 {
		fmt.Printf(" waitlist position %d", reg.WaitlistPosition)
	}
	fmt.Println()
	return nil
}

func runEmailSent(ctx context.Context, client *apiclient.Client, registrationID string) error {
	if registrationID == "" {
		return fmt.Errorf("email-sent: registration id is required")
	}
	if err := client.MarkEmailSent(ctx, registrationID); err != nil {
		return err
	}
	fmt.Println("marked email sent")
	return nil
}
