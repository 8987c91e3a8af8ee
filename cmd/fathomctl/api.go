package main

import (
	"context"
	"fmt"

	"github.com/fathomctl/fathomctl/internal/connection"
	"github.com/fathomctl/fathomctl/internal/display"
	"github.com/fathomctl/fathomctl/internal/probe"
	"github.com/urfave/cli/v3"
)

var apiCommand = &cli.Command{
	Name:  "api",
	Usage: "Exercise the teams and meetings endpoints via SDK, REST, and combined access paths",
	Flags: []cli.Flag{
		configFlag(),
		&cli.BoolFlag{
			Name:  "prefer-rest",
			Usage: "Try the REST path before the SDK path in combined calls",
		},
		&cli.BoolFlag{
			Name:  "show-data",
			Usage: "Print full response payloads",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		conn, printer, err := connect(ctx, command)
		if err != nil {
			return err
		}

		showData := command.Bool("show-data")

		printer.Header("Fathom API Connection Test")
		info := conn.KeyInfo()
		printer.KeyInfo(info)

		printer.Subheader("API Key Information")
		printer.Result("API Key starts with", info.Prefix, 2)
		printer.Result("API Key length", info.Length, 2)
		printer.Result("SDK Client Available", info.SDKAvailable, 2)

		sequence := probe.NewSequence(getLogger(ctx).Named("probe"))
		legs := []struct {
			id  string
			run func(ctx context.Context) connection.Envelope
		}{
			{"teams_sdk", func(ctx context.Context) connection.Envelope { return conn.ListTeamsSDK(ctx) }},
			{"teams_rest", func(ctx context.Context) connection.Envelope { return conn.ListTeamsREST(ctx) }},
			{"teams_combined", func(ctx context.Context) connection.Envelope { return conn.ListTeams(ctx) }},
			{"meetings_sdk", func(ctx context.Context) connection.Envelope { return conn.ListMeetingsSDK(ctx, nil) }},
			{"meetings_rest", func(ctx context.Context) connection.Envelope { return conn.ListMeetingsREST(ctx, nil) }},
			{"meetings_combined", func(ctx context.Context) connection.Envelope { return conn.ListMeetings(ctx, nil) }},
		}
		for _, leg := range legs {
			if err := sequence.Add(leg.id, leg.run); err != nil {
				return fmt.Errorf("failed to add probe: %w", err)
			}
		}

		outcomes, err := sequence.Run(ctx)
		if err != nil {
			return err
		}

		printer.Subheader("List Teams - All Methods")
		for _, outcome := range outcomes[:3] {
			renderAPIOutcome(printer, outcome, showData)
		}

		printer.Subheader("List Meetings - All Methods")
		for _, outcome := range outcomes[3:] {
			renderAPIOutcome(printer, outcome, showData)
		}

		printer.Suggestions([]string{
			"Verify which workspace this API key belongs to and its scopes",
			"Ensure the key has 'read meetings' permission",
			"Run 'fathomctl filters' to test filter combinations",
			"Re-run with --debug to see the outbound HTTP requests",
		})

		printer.Completion()
		return nil
	},
}

func renderAPIOutcome(printer *display.Printer, outcome probe.Outcome, showData bool) {
	labels := map[string]string{
		"teams_sdk":         "List Teams SDK",
		"teams_rest":        "List Teams REST",
		"teams_combined":    "List Teams Combined",
		"meetings_sdk":      "List Meetings SDK",
		"meetings_rest":     "List Meetings REST",
		"meetings_combined": "List Meetings Combined",
	}

	label := labels[outcome.ID]
	env := outcome.Envelope

	printer.ResponseSummary(label, env)

	switch outcome.ID {
	case "teams_combined", "meetings_combined":
		printer.Result("Method used", env.Method, 2)
	case "meetings_sdk":
		if env.Success {
			printer.MeetingSummary(display.Meetings(env), 3)
		}
	}

	if showData && env.Success {
		printer.JSON(env.Data)
	}
}
