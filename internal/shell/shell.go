// Package shell runs the interactive add/view/check session on a pair of
// text streams.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/moto-maintenance/internal/db"
	"github.com/ukydev/moto-maintenance/internal/duecheck"
	"github.com/ukydev/moto-maintenance/internal/input"
	"github.com/ukydev/moto-maintenance/internal/models"
	"github.com/ukydev/moto-maintenance/internal/notify"
)

const (
	welcome       = "Welcome to the Motorcycle Maintenance Record System"
	actionPrompt  = "Choose an action: 'add' to add a new record, 'view' to view records, 'check' to check maintenance requirements, or 'exit' to exit: "
	usageMessage  = "Invalid action. Please choose 'add', 'view', 'check', or 'exit'."
	noRecordsView = "No records available."
)

// Session holds the state of one interactive run. The current date and
// mileage are asked once at start and reused by every check.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	store     db.MaintenanceCollection
	engine    *duecheck.Engine
	publisher notify.Publisher

	currentDate    time.Time
	currentMileage int
}

// New creates a session reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, store db.MaintenanceCollection, engine *duecheck.Engine, publisher notify.Publisher) *Session {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		store:     store,
		engine:    engine,
		publisher: publisher,
	}
}

// Run executes the prompt loop until 'exit' or end of input.
func (s *Session) Run(ctx context.Context) error {
	s.println(welcome)

	var err error
	if s.currentDate, err = s.promptDate("Enter the current date (YYYY-MM-DD): "); err != nil {
		return endOfInput(err)
	}
	if s.currentMileage, err = s.promptMileage("Enter the current mileage: "); err != nil {
		return endOfInput(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := s.prompt(actionPrompt)
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToLower(strings.TrimSpace(action)) {
		case "add":
			if err := s.add(); err != nil {
				return endOfInput(err)
			}
		case "view":
			s.view()
		case "check":
			s.check(ctx)
		case "exit":
			return nil
		default:
			s.println(usageMessage)
		}
	}
}

func (s *Session) add() error {
	date, err := s.promptDate("Enter the date of maintenance (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	var serviceType string
	for {
		serviceType, err = s.prompt("Enter the type of maintenance: ")
		if err != nil {
			return err
		}
		serviceType = strings.TrimSpace(serviceType)
		if serviceType != "" {
			break
		}
		s.println(models.ErrEmptyType.Error())
	}

	mileage, err := s.promptMileage("Enter the mileage at the time of maintenance: ")
	if err != nil {
		return err
	}

	rec := s.store.Add(date, serviceType, mileage)
	log.WithFields(log.Fields{
		"type":    rec.Type,
		"mileage": rec.Mileage,
		"tracked": duecheck.IsTracked(rec.Type),
	}).Debug("Maintenance record added")
	s.println("Record added successfully.")
	return nil
}

func (s *Session) view() {
	records := s.store.All()
	if len(records) == 0 {
		s.println(noRecordsView)
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tMILEAGE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", rec.Date.Format(models.DateLayout), rec.Type, rec.Mileage)
	}
	tw.Flush()
}

func (s *Session) check(ctx context.Context) {
	report := s.engine.Check(s.store, s.currentMileage, s.currentDate)
	for _, line := range report.Lines() {
		s.println(line)
	}

	if err := s.publisher.PublishReport(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to publish due report")
	}
}

func (s *Session) promptDate(msg string) (time.Time, error) {
	for {
		text, err := s.prompt(msg)
		if err != nil {
			return time.Time{}, err
		}
		date, err := input.ParseDate(text)
		if err == nil {
			return date, nil
		}
		s.println("Invalid format. Please enter the date in the format YYYY-MM-DD.")
	}
}

func (s *Session) promptMileage(msg string) (int, error) {
	for {
		text, err := s.prompt(msg)
		if err != nil {
			return 0, err
		}
		mileage, err := input.ParseMileage(text)
		if err == nil {
			return mileage, nil
		}
		s.println("Invalid mileage. Please enter a whole, non-negative number.")
	}
}

func (s *Session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

// endOfInput treats a closed input stream as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
