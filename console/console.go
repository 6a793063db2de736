// Package console implements the interactive roster menu.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"legal-roster/logger"
	"legal-roster/models"
	"legal-roster/repository"
	"legal-roster/service"
)

// Roster is what the menu needs from the record service
type Roster interface {
	ListLawyers(ctx context.Context) ([]models.Lawyer, error)
	ListCases(ctx context.Context) ([]models.LegalCase, error)
	GetCaseWithLawyers(ctx context.Context, caseID int64) ([]models.CaseLawyerRow, error)
	AddLawyer(ctx context.Context, req service.AddLawyerRequest) (int64, error)
	AddCase(ctx context.Context, req service.AddCaseRequest) (int64, error)
	AssignLawyerToCase(ctx context.Context, req service.AssignLawyerRequest) error
}

// Console runs the numbered menu until the user exits or input ends
type Console struct {
	roster Roster
	in     Prompter
	out    io.Writer
	log    logger.Logger
}

// New creates a console
func New(roster Roster, in Prompter, out io.Writer, log logger.Logger) *Console {
	return &Console{
		roster: roster,
		in:     in,
		out:    out,
		log:    log.WithField("component", "console"),
	}
}

// Run loops over the menu. A failed action is reported and the session
// continues; only end of input or ctx cancellation stops it.
func (c *Console) Run(ctx context.Context) error {
	c.log.Debug("User interface started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.in.Prompt("Select an option: ")
		if errors.Is(err, io.EOF) {
			c.println("\nExiting Legal Case Roster. Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		var actionErr error
		switch strings.TrimSpace(choice) {
		case "1":
			actionErr = c.listLawyers(ctx)
		case "2":
			actionErr = c.listCases(ctx)
		case "3":
			actionErr = c.viewCase(ctx)
		case "4":
			actionErr = c.addLawyer(ctx)
		case "5":
			actionErr = c.addCase(ctx)
		case "6":
			actionErr = c.assignLawyer(ctx)
		case "0":
			c.println("\nExiting Legal Case Roster. Goodbye!")
			return nil
		default:
			c.println("\n[!] Invalid option. Please try again.")
		}

		if errors.Is(actionErr, io.EOF) {
			c.println("\nExiting Legal Case Roster. Goodbye!")
			return nil
		}
	}
}

func (c *Console) printMenu() {
	c.println("\n===== Legal Case Counsel Roster =====")
	c.println("1. List all lawyers")
	c.println("2. List all cases")
	c.println("3. View a case and its assigned lawyers")
	c.println("4. Add a new lawyer")
	c.println("5. Add a new case")
	c.println("6. Assign a lawyer to a case")
	c.println("0. Exit")
	c.println("=====================================")
}

func (c *Console) listLawyers(ctx context.Context) error {
	lawyers, err := c.roster.ListLawyers(ctx)
	if err != nil {
		c.printf("[!] Error listing lawyers: %v\n", err)
		return nil
	}
	renderLawyers(c.out, lawyers)
	return nil
}

func (c *Console) listCases(ctx context.Context) error {
	cases, err := c.roster.ListCases(ctx)
	if err != nil {
		c.printf("[!] Error listing cases: %v\n", err)
		return nil
	}
	renderCases(c.out, cases)
	return nil
}

func (c *Console) viewCase(ctx context.Context) error {
	if err := c.listCases(ctx); err != nil {
		return err
	}

	raw, err := c.ask("\nEnter the case_id to view (or press Enter to cancel): ")
	if err != nil {
		return err
	}
	if raw == "" {
		c.println("Cancelled.")
		return nil
	}

	caseID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.println("[!] Please enter a valid numeric case_id.")
		return nil
	}

	rows, err := c.roster.GetCaseWithLawyers(ctx, caseID)
	if err != nil {
		c.printf("[!] Error loading case: %v\n", err)
		return nil
	}

	detail := models.NewCaseDetail(rows)
	if detail == nil {
		c.printf("\nNo case found with case_id = %d.\n", caseID)
		return nil
	}
	renderCaseDetail(c.out, detail)
	return nil
}

func (c *Console) addLawyer(ctx context.Context) error {
	c.println("\n--- Add New Lawyer ---")
	answers, err := c.askAll(
		"First name: ",
		"Last name: ",
		"Specialization (e.g., Family Law, Corporate Law): ",
		"Email: ",
		"Phone (optional, press Enter to skip): ",
	)
	if err != nil {
		return err
	}

	req := service.AddLawyerRequest{
		FirstName:      answers[0],
		LastName:       answers[1],
		Specialization: answers[2],
		Email:          answers[3],
		Phone:          optionalAnswer(answers[4]),
	}
	if err := req.Validate(); err != nil {
		c.printf("[!] %v\n", err)
		return nil
	}

	id, err := c.roster.AddLawyer(ctx, req)
	if err != nil {
		c.printf("[!] Error adding lawyer: %v\n", err)
		return nil
	}
	c.printf("\n[✓] Lawyer added successfully (lawyer_id %d).\n", id)
	return nil
}

func (c *Console) addCase(ctx context.Context) error {
	c.println("\n--- Add New Case ---")
	answers, err := c.askAll(
		"Case name: ",
		"Client name: ",
		"Status (e.g., Open, Pending, In Progress): ",
		"Start date (YYYY-MM-DD): ",
		"End date (YYYY-MM-DD, optional): ",
		"Description (optional): ",
	)
	if err != nil {
		return err
	}

	req := service.AddCaseRequest{
		Name:        answers[0],
		ClientName:  answers[1],
		Status:      answers[2],
		StartDate:   answers[3],
		EndDate:     optionalAnswer(answers[4]),
		Description: optionalAnswer(answers[5]),
	}
	if err := req.Validate(); err != nil {
		c.printf("[!] %v\n", err)
		return nil
	}

	id, err := c.roster.AddCase(ctx, req)
	if err != nil {
		c.printf("[!] Error adding case: %v\n", err)
		return nil
	}
	c.printf("\n[✓] Case added successfully (case_id %d).\n", id)
	return nil
}

func (c *Console) assignLawyer(ctx context.Context) error {
	c.println("\n--- Assign Lawyer to Case ---")
	if err := c.listLawyers(ctx); err != nil {
		return err
	}
	if err := c.listCases(ctx); err != nil {
		return err
	}

	answers, err := c.askAll(
		"\nEnter lawyer_id to assign: ",
		"Enter case_id to assign them to: ",
		"Role (e.g., Lead, Consultant): ",
		"Billable hours (e.g., 5.0): ",
	)
	if err != nil {
		return err
	}

	lawyerID, idErr1 := strconv.ParseInt(answers[0], 10, 64)
	caseID, idErr2 := strconv.ParseInt(answers[1], 10, 64)
	hours, hoursErr := strconv.ParseFloat(answers[3], 64)
	if idErr1 != nil || idErr2 != nil || hoursErr != nil {
		c.println("[!] Please enter valid numeric values for IDs and hours.")
		return nil
	}

	req := service.AssignLawyerRequest{
		CaseID:        caseID,
		LawyerID:      lawyerID,
		Role:          answers[2],
		BillableHours: hours,
	}
	if err := req.Validate(); err != nil {
		c.printf("[!] %v\n", err)
		return nil
	}

	if err := c.roster.AssignLawyerToCase(ctx, req); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			c.printf("[!] No case %d or lawyer %d exists.\n", caseID, lawyerID)
			return nil
		}
		c.printf("[!] Error assigning lawyer to case: %v\n", err)
		return nil
	}
	c.println("\n[✓] Lawyer assigned to case successfully.")
	return nil
}

func (c *Console) ask(label string) (string, error) {
	answer, err := c.in.Prompt(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (c *Console) askAll(labels ...string) ([]string, error) {
	answers := make([]string, 0, len(labels))
	for _, label := range labels {
		answer, err := c.ask(label)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func optionalAnswer(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
