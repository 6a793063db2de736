package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"legal-roster/app"
	"legal-roster/config"
	"legal-roster/service"
)

func main() {
	configFile := flag.String("c", "", "path to JSON configuration file (config.json when present)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg, app.NewLogger(cfg, os.Stderr))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer a.Close()

	lawyer := service.AddLawyerRequest{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Specialization: "IP Law",
		Email:          "ada@x.com",
	}

	// Check if lawyer already exists
	lawyers, err := a.Records.ListLawyers(ctx)
	if err != nil {
		log.Fatalf("Failed to list lawyers: %v", err)
	}
	for _, l := range lawyers {
		if strings.EqualFold(l.Email, lawyer.Email) {
			log.Printf("Lawyer with email %s already exists (ID: %d)", lawyer.Email, l.ID)
			return
		}
	}

	legalCase := service.AddCaseRequest{
		Name:       "Smith v. Jones",
		ClientName: "Jones Co",
		Status:     "Open",
		StartDate:  "2024-01-01",
	}

	if err := lawyer.Validate(); err != nil {
		log.Fatalf("Invalid lawyer: %v", err)
	}
	if err := legalCase.Validate(); err != nil {
		log.Fatalf("Invalid case: %v", err)
	}

	lawyerID, err := a.Records.AddLawyer(ctx, lawyer)
	if err != nil {
		log.Fatalf("Failed to create lawyer: %v", err)
	}

	caseID, err := a.Records.AddCase(ctx, legalCase)
	if err != nil {
		log.Fatalf("Failed to create case: %v", err)
	}

	assignment := service.AssignLawyerRequest{
		CaseID:        caseID,
		LawyerID:      lawyerID,
		Role:          "Lead",
		BillableHours: 3.5,
	}
	if err := assignment.Validate(); err != nil {
		log.Fatalf("Invalid assignment: %v", err)
	}
	if err := a.Records.AssignLawyerToCase(ctx, assignment); err != nil {
		log.Fatalf("Failed to assign lawyer: %v", err)
	}

	fmt.Printf("✅ Roster seeded successfully!\n")
	fmt.Printf("   Lawyer: %s %s (ID: %d)\n", lawyer.FirstName, lawyer.LastName, lawyerID)
	fmt.Printf("   Case: %s (ID: %d)\n", legalCase.Name, caseID)
	fmt.Printf("   Role: %s, %.2f hours\n", assignment.Role, assignment.BillableHours)
}
