package email

import (
	"fmt"
	"strings"
	"time"
)

type SponsorshipDetails struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Package     string
	Message     string
}

type TransferDetails struct {
	PlayerName   string
	FromTeam     string
	ToTeam       string
	TransferDate time.Time
	Fee          string
	Status       string
	Notes        string
}

type AssignmentDetails struct {
	OfficialName string
	HomeTeam     string
	AwayTeam     string
	Kickoff      time.Time
	Venue        string
}

func FormatKickoff(kickoff time.Time) string {
	if kickoff.IsZero() {
		return "TBD"
	}
	return kickoff.Format("Monday, Jan 2, 2006 3:04 PM MST")
}

func BuildSponsorshipInquiry(details SponsorshipDetails) Message {
	company := orDefault(details.CompanyName, "Unknown company")

	lines := []string{
		"A new sponsorship inquiry was submitted.",
		"",
		fmt.Sprintf("Company: %s", company),
		fmt.Sprintf("Contact: %s", orDefault(details.ContactName, "Not provided")),
		fmt.Sprintf("Email: %s", orDefault(details.Email, "Not provided")),
		fmt.Sprintf("Phone: %s", orDefault(details.Phone, "Not provided")),
		fmt.Sprintf("Package: %s", orDefault(details.Package, "Not specified")),
	}
	if message := strings.TrimSpace(details.Message); message != "" {
		lines = append(lines, "", message)
	}

	return Message{
		Subject: fmt.Sprintf("Sponsorship inquiry - %s", company),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildTransferDecision(details TransferDetails) Message {
	player := orDefault(details.PlayerName, "Player")
	status := orDefault(details.Status, "updated")
	date := "TBD"
	if !details.TransferDate.IsZero() {
		date = details.TransferDate.Format("Jan 2, 2006")
	}

	lines := []string{
		fmt.Sprintf("The transfer of %s has been %s.", player, status),
		"",
		fmt.Sprintf("From: %s", orDefault(details.FromTeam, "Free agent")),
		fmt.Sprintf("To: %s", orDefault(details.ToTeam, "TBD")),
		fmt.Sprintf("Date: %s", date),
	}
	if fee := strings.TrimSpace(details.Fee); fee != "" {
		lines = append(lines, fmt.Sprintf("Fee: %s", fee))
	}
	if notes := strings.TrimSpace(details.Notes); notes != "" {
		lines = append(lines, fmt.Sprintf("Notes: %s", notes))
	}

	return Message{
		Subject: fmt.Sprintf("Transfer %s - %s", status, player),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildOfficialAssignment(details AssignmentDetails) Message {
	fixture := fmt.Sprintf("%s vs %s", orDefault(details.HomeTeam, "Home"), orDefault(details.AwayTeam, "Away"))

	lines := []string{
		fmt.Sprintf("Hi %s,", orDefault(details.OfficialName, "there")),
		"",
		fmt.Sprintf("You have been assigned to officiate %s.", fixture),
		fmt.Sprintf("Kickoff: %s", FormatKickoff(details.Kickoff)),
		fmt.Sprintf("Venue: %s", orDefault(details.Venue, "TBD")),
	}

	return Message{
		Subject: fmt.Sprintf("Match assignment - %s", fixture),
		Body:    strings.Join(lines, "\n"),
	}
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
